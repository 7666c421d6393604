package normalizer

// DefaultStopWords 返回默认停用词集合
// 以西班牙语功能词为主,附带学术页面常见的英语功能词
// 与无教学价值的课程元数据词 (horas, precio, modalidad 等)
func DefaultStopWords() map[string]bool {
	words := []string{
		// 介词与冠词
		"a", "al", "ante", "bajo", "con", "de", "del", "desde", "durante",
		"en", "entre", "hacia", "hasta", "para", "por", "segun", "sin",
		"sobre", "tras", "el", "la", "los", "las", "un", "una", "unos",
		"unas", "ha", "cada", "tanto", "frente",

		// 连词与连接词
		"y", "o", "pero", "si", "no", "que", "quien", "como", "cuando",
		"donde", "cual", "cuales",

		// 指示词
		"este", "esta", "estos", "estas", "ese", "esa", "esos", "esas",
		"aquel", "aquella", "aquellos", "aquellas", "estara",

		// 代词与限定词
		"me", "te", "se", "nos", "les", "lo", "le", "su", "sus", "mi",
		"mis", "tu", "tus", "nuestro", "nuestra", "nuestros", "nuestras",

		// 无语义价值的课程元数据
		"horas", "fecha", "inicio", "precio", "duracion", "estudiante",
		"estudiantes", "profesional", "profesionales", "curso", "cursos",
		"programa", "programas", "nivel", "modalidad", "virtual", "presencial",

		// 高频低区分度词
		"ser", "estar", "tener", "hacer", "dar", "ver", "poder", "decir",
		"vez", "muy", "mas", "bien", "todo", "toda", "todos", "todas",
		"hay", "han", "has", "he", "habia", "hemos", "habian", "son",
		"somos", "era", "eran", "fue", "fueron", "sera", "seran", "sea",
		"sean", "sido", "siendo", "dotar", "busca", "aplicar", "utilizar",
		"brindar", "puede",

		// 学术内容中常见的英语功能词
		"the", "and", "or", "of", "to", "in", "on", "at", "for", "with",
		"by", "from", "all", "is", "are", "was", "were", "be", "been",
		"being", "have", "had", "do", "does", "did", "will", "would",
		"could", "should", "may", "might", "can", "must", "shall", "this",
		"that", "these", "those", "as", "an",

		// 高频西班牙语助动词
		"ir", "voy", "va", "van", "vamos", "iba", "ibas", "iban",
		"fuiste", "ira", "iran", "vaya", "vayan", "haga", "hagan",
		"haces", "hacen", "hacia", "hacian", "hizo", "hicieron",
		"hara", "haran",
	}

	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
