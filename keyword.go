package legalrights

import (
	"regexp"
	"strings"
)

// LegalKeywords are labour-law terms recognized in questions and documents.
var LegalKeywords = []string{
	"经济补偿", "赔偿金", "解除劳动合同", "终止劳动合同",
	"违法解除", "协商解除", "裁员", "辞退", "离职",
	"N+1", "2N", "补偿金", "双倍赔偿",
	"劳动仲裁", "劳动争议", "维权", "诉讼",
	"工龄", "工资", "加班费", "社保", "公积金",
	"试用期", "服务期", "竞业限制", "保密协议",
	"无固定期限", "固定期限", "劳务派遣",
}

var articleRe = regexp.MustCompile(`(?:《[^》]+》)?第[零一二三四五六七八九十百千\d]+条`)

// ExtractKeywords returns the legal terms found in text, in LegalKeywords
// order, followed by statute references such as 《劳动合同法》第47条 in
// order of appearance. Terms match case-insensitively; duplicates are dropped.
func ExtractKeywords(text string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	var keywords []string

	add := func(k string) {
		if !seen[k] {
			seen[k] = true
			keywords = append(keywords, k)
		}
	}

	for _, k := range LegalKeywords {
		if strings.Contains(lower, strings.ToLower(k)) {
			add(k)
		}
	}
	for _, ref := range articleRe.FindAllString(text, -1) {
		add(ref)
	}

	return keywords
}
