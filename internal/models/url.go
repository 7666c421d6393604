package models

import (
	"net/url"
	"strings"
)

// ResolveURL 将页面内的href解析为绝对URL
// 相对地址基于base解析,解析失败或非http(s)协议返回空串
// fragment一律去除,保证同一页面不同锚点视为同一URL
func ResolveURL(base, href string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}

	resolved := baseURL.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	resolved.Fragment = ""
	return resolved.String()
}

// SlugFromURL 从URL确定性地派生课程ID
// 取路径最后一段,转小写,非字母数字字符折叠为连字符
// 同一URL多次爬取产生相同ID,这是字典key稳定性的基础
func SlugFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return slugify(rawURL)
	}

	path := strings.Trim(parsed.Path, "/")
	if path == "" {
		return slugify(parsed.Host)
	}

	segments := strings.Split(path, "/")
	last := segments[len(segments)-1]

	// 去掉.html等扩展名
	if idx := strings.LastIndex(last, "."); idx > 0 {
		last = last[:idx]
	}
	return slugify(last)
}

// slugify 转小写并把非字母数字字符折叠为单个连字符
func slugify(s string) string {
	s = strings.ToLower(s)
	var sb strings.Builder
	sb.Grow(len(s))
	lastHyphen := true
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			sb.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.Trim(sb.String(), "-")
}
