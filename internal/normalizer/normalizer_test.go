package normalizer

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	n := New(nil)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "转小写并去重音",
			text: "Gestión de Proyectos Ágiles",
			want: []string{"gestion", "proyectos", "agiles"},
		},
		{
			name: "过滤标点符号",
			text: "programación, desarrollo; web!",
			want: []string{"programacion", "desarrollo", "web"},
		},
		{
			name: "连字符作为切分边界",
			text: "e-learning front-end",
			want: []string{"learning", "front", "end"},
		},
		{
			name: "去除停用词",
			text: "el curso de marketing para los estudiantes",
			want: []string{"marketing"},
		},
		{
			name: "丢弃单字符词",
			text: "a b análisis x datos",
			want: []string{"analisis", "datos"},
		},
		{
			name: "保留数字词",
			text: "python3 industria 40",
			want: []string{"python3", "industria", "40"},
		},
		{
			name: "空文本",
			text: "",
			want: []string{},
		},
		{
			name: "纯停用词文本",
			text: "de la en por con",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Normalize(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	n := New(nil)
	text := "Diseño Gráfico y Creatividad Visual"
	first := n.Normalize(text)
	for i := 0; i < 5; i++ {
		if got := n.Normalize(text); !reflect.DeepEqual(got, first) {
			t.Fatalf("归一化结果不稳定: %v vs %v", got, first)
		}
	}
}

func TestNormalizeSet(t *testing.T) {
	n := New(nil)
	set := n.NormalizeSet("datos datos análisis de datos")
	if len(set) != 2 {
		t.Errorf("词集合应去重, got %v", set)
	}
	if !set["datos"] || !set["analisis"] {
		t.Errorf("词集合内容错误: %v", set)
	}
}

func TestIsStopWord(t *testing.T) {
	n := New(nil)
	if !n.IsStopWord("de") || !n.IsStopWord("DE") {
		t.Error("停用词判定应忽略大小写")
	}
	if n.IsStopWord("marketing") {
		t.Error("非停用词被误判")
	}
}

func TestCustomStopWords(t *testing.T) {
	n := New(map[string]bool{"datos": true})
	got := n.Normalize("análisis de datos")
	want := []string{"analisis", "de"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("自定义停用词未生效: got %v, want %v", got, want)
	}
}
