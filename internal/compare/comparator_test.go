package compare

import (
	"errors"
	"math"
	"testing"

	"github.com/RecoveryAshes/cursofind/internal/index"
	"github.com/RecoveryAshes/cursofind/internal/models"
)

func testComparator() *Comparator {
	dict := models.CourseDictionary{
		"curso-python": {
			ID:    "curso-python",
			URL:   "https://cursos.example.edu/curso-python",
			Title: "Programación en Python",
			Words: map[string]bool{"programacion": true, "python": true, "software": true},
		},
		"curso-java": {
			ID:    "curso-java",
			URL:   "https://cursos.example.edu/curso-java",
			Title: "Programación en Java",
			Words: map[string]bool{"programacion": true, "java": true, "software": true},
		},
		"curso-salud": {
			ID:    "curso-salud",
			URL:   "https://cursos.example.edu/curso-salud",
			Title: "Salud y Bienestar",
			Words: map[string]bool{"salud": true, "bienestar": true, "terapia": true},
		},
	}
	idx := index.Build(dict)
	idf := index.BuildIDF(dict, idx)
	return NewComparator(dict, idf, nil, nil)
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Method
		wantErr bool
	}{
		{"默认算法", "", MethodCombined, false},
		{"jaccard", "jaccard", MethodJaccard, false},
		{"cosine", "cosine", MethodCosine, false},
		{"overlap", "overlap", MethodOverlap, false},
		{"semantic", "semantic", MethodSemantic, false},
		{"combined", "combined", MethodCombined, false},
		{"未知算法", "euclidean", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMethod(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMethod(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMethod(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestJaccard(t *testing.T) {
	c := testComparator()

	// 共享2个词,并集4个词: 2/4
	score, err := c.Compare("curso-python", "curso-java", MethodJaccard)
	if err != nil {
		t.Fatalf("比较失败: %v", err)
	}
	if math.Abs(score-0.5) > 1e-9 {
		t.Errorf("Jaccard = %f, want 0.5", score)
	}

	// 不相交集合得0
	score, err = c.Compare("curso-python", "curso-salud", MethodJaccard)
	if err != nil {
		t.Fatalf("比较失败: %v", err)
	}
	if score != 0 {
		t.Errorf("不相交集合Jaccard应为0: %f", score)
	}
}

func TestJaccardBothEmpty(t *testing.T) {
	// 两个空集合定义为0,不产生0/0
	if got := jaccard(map[string]bool{}, map[string]bool{}); got != 0 {
		t.Errorf("空集合Jaccard应为0: %f", got)
	}
}

func TestOverlap(t *testing.T) {
	c := testComparator()

	// 交集2,较小集合3: 2/3
	score, err := c.Compare("curso-python", "curso-java", MethodOverlap)
	if err != nil {
		t.Fatalf("比较失败: %v", err)
	}
	if math.Abs(score-2.0/3.0) > 1e-9 {
		t.Errorf("Overlap = %f, want %f", score, 2.0/3.0)
	}

	if got := overlap(map[string]bool{}, map[string]bool{"x": true}); got != 0 {
		t.Errorf("空集合Overlap应为0: %f", got)
	}
}

func TestSemanticCategories(t *testing.T) {
	c := testComparator()

	// 两门编程课命中同一主题类别,语义得分应高于词集合Jaccard
	semantic, err := c.Compare("curso-python", "curso-java", MethodSemantic)
	if err != nil {
		t.Fatalf("比较失败: %v", err)
	}
	jac, _ := c.Compare("curso-python", "curso-java", MethodJaccard)
	if semantic <= jac {
		t.Errorf("同类课程语义得分应高于Jaccard: semantic=%f jaccard=%f", semantic, jac)
	}
	// 0.6*1.0 + 0.4*0.5 = 0.8
	if math.Abs(semantic-0.8) > 1e-9 {
		t.Errorf("Semantic = %f, want 0.8", semantic)
	}

	// 不同主题的课程类别不相交
	cross, _ := c.Compare("curso-python", "curso-salud", MethodSemantic)
	if cross != 0 {
		t.Errorf("不同主题课程语义得分应为0: %f", cross)
	}
}

func TestCombinedWeights(t *testing.T) {
	c := testComparator()

	jac, _ := c.Compare("curso-python", "curso-java", MethodJaccard)
	cos, _ := c.Compare("curso-python", "curso-java", MethodCosine)
	sem, _ := c.Compare("curso-python", "curso-java", MethodSemantic)
	combined, _ := c.Compare("curso-python", "curso-java", MethodCombined)

	want := 0.3*jac + 0.3*cos + 0.4*sem
	if math.Abs(combined-want) > 1e-9 {
		t.Errorf("Combined = %f, want %f", combined, want)
	}
}

func TestCompareSymmetry(t *testing.T) {
	c := testComparator()

	for _, method := range AllMethods() {
		ab, err := c.Compare("curso-python", "curso-java", method)
		if err != nil {
			t.Fatalf("比较失败 [%s]: %v", method, err)
		}
		ba, err := c.Compare("curso-java", "curso-python", method)
		if err != nil {
			t.Fatalf("比较失败 [%s]: %v", method, err)
		}
		if math.Abs(ab-ba) > 1e-9 {
			t.Errorf("算法%s不对称: %f vs %f", method, ab, ba)
		}
		if ab < 0 || ab > 1.0+1e-9 {
			t.Errorf("算法%s得分越界: %f", method, ab)
		}
	}
}

func TestCompareSameCourse(t *testing.T) {
	c := testComparator()

	for _, method := range AllMethods() {
		score, err := c.Compare("curso-python", "curso-python", method)
		if err != nil {
			t.Fatalf("比较失败 [%s]: %v", method, err)
		}
		if score != 1.0 {
			t.Errorf("课程与自身相似度应为1 [%s]: %f", method, score)
		}
	}
}

func TestCompareUnknownCourse(t *testing.T) {
	c := testComparator()

	_, err := c.Compare("curso-python", "curso-fantasma", MethodJaccard)
	var notFound *models.CourseNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("未知课程应返回CourseNotFoundError, got %v", err)
	}
	if notFound.CourseID != "curso-fantasma" {
		t.Errorf("错误应携带未知课程ID: %s", notFound.CourseID)
	}
}

func TestMeasure(t *testing.T) {
	c := testComparator()

	metrics, err := c.Measure("curso-python", "curso-java", MethodJaccard)
	if err != nil {
		t.Fatalf("度量失败: %v", err)
	}

	if math.Abs(metrics.Score-0.5) > 1e-9 {
		t.Errorf("度量得分错误: %f", metrics.Score)
	}
	if metrics.WordsA != 3 || metrics.WordsB != 3 {
		t.Errorf("词数错误: %d, %d", metrics.WordsA, metrics.WordsB)
	}
	if metrics.SharedWords != 2 || metrics.UnionWords != 4 {
		t.Errorf("共享/并集词数错误: %d, %d", metrics.SharedWords, metrics.UnionWords)
	}
	if math.Abs(metrics.Overlap-0.5) > 1e-9 {
		t.Errorf("词汇重叠率错误: %f", metrics.Overlap)
	}
	if metrics.ElapsedMs < 0 {
		t.Errorf("耗时不应为负: %f", metrics.ElapsedMs)
	}
	// 空探针下内存增量恒为0
	if metrics.MemoryDelta != 0 {
		t.Errorf("空探针内存增量应为0: %d", metrics.MemoryDelta)
	}
	wantShared := []string{"programacion", "software"}
	if len(metrics.TopShared) != 2 || metrics.TopShared[0] != wantShared[0] || metrics.TopShared[1] != wantShared[1] {
		t.Errorf("共享词样本错误: %v", metrics.TopShared)
	}
}

func TestCompareAll(t *testing.T) {
	c := testComparator()

	results, err := c.CompareAll("curso-python", "curso-java")
	if err != nil {
		t.Fatalf("并排比较失败: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("应返回5种算法的度量: %d", len(results))
	}
	for _, method := range AllMethods() {
		metrics, ok := results[method]
		if !ok {
			t.Errorf("缺失算法%s的度量", method)
			continue
		}
		if metrics.Method != string(method) {
			t.Errorf("度量算法名错误: %s", metrics.Method)
		}
	}
}

func TestFindSimilar(t *testing.T) {
	c := testComparator()

	results, err := c.FindSimilar("curso-python", 2, MethodCombined)
	if err != nil {
		t.Fatalf("相似课程检索失败: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("结果数错误: %d", len(results))
	}
	if results[0].CourseID != "curso-java" {
		t.Errorf("最相似课程错误: %s", results[0].CourseID)
	}
	for _, r := range results {
		if r.CourseID == "curso-python" {
			t.Error("结果不应包含课程自身")
		}
	}

	if _, err := c.FindSimilar("curso-fantasma", 2, MethodCombined); err == nil {
		t.Error("未知课程应返回错误")
	}

	empty, err := c.FindSimilar("curso-python", 0, MethodCombined)
	if err != nil || len(empty) != 0 {
		t.Errorf("topK为0应返回空结果: %v, %v", empty, err)
	}
}
