package compare

// Category 主题关键词类别
// 语义策略用类别命中情况衡量两门课程的主题接近程度
type Category struct {
	Name  string   `mapstructure:"name"`  // 类别名
	Terms []string `mapstructure:"terms"` // 类别下的归一化关键词
}

// DefaultCategories 返回默认的主题类别表
// 词表与课程文本走同一套归一化,均为去重音小写形式
// 类别边界可通过配置覆盖,这里只是默认值
func DefaultCategories() []Category {
	return []Category{
		{Name: "programacion", Terms: []string{
			"programacion", "desarrollo", "software", "web", "python", "java", "javascript",
		}},
		{Name: "marketing", Terms: []string{
			"marketing", "publicidad", "ventas", "digital", "sociales",
		}},
		{Name: "administracion", Terms: []string{
			"administracion", "gestion", "empresarial", "negocios", "finanzas",
		}},
		{Name: "diseno", Terms: []string{
			"diseno", "grafico", "visual", "creatividad", "arte",
		}},
		{Name: "salud", Terms: []string{
			"salud", "medicina", "clinica", "terapia", "bienestar",
		}},
		{Name: "educacion", Terms: []string{
			"educacion", "pedagogia", "ensenanza", "aprendizaje",
		}},
		{Name: "derecho", Terms: []string{
			"derecho", "legal", "juridico", "normatividad",
		}},
		{Name: "fotografia", Terms: []string{
			"fotografia", "imagen", "audiovisual", "multimedia",
		}},
	}
}

// matchedCategories 返回课程词集合命中的类别名集合
// 词集合与类别词表有任意交集即视为命中该类别
func matchedCategories(words map[string]bool, categories []Category) map[string]bool {
	matched := make(map[string]bool)
	for _, cat := range categories {
		for _, term := range cat.Terms {
			if words[term] {
				matched[cat.Name] = true
				break
			}
		}
	}
	return matched
}
