package render

import "github.com/cnucho/gptcatalog/internal/catalog"

// AutoMarker tags Korean names synthesized from the English name.
const AutoMarker = "(자동번역)"

type labels struct {
	IndexTitle   string
	Switch       string
	TistoryList  string
	Search       string
	SearchTip    string
	Empty        string
	OpenGPT      string
	Details      string
	Restricted   string
	URLHidden    string
	Back         string
	Tistory      string
	GitHub       string
	Notice       string
	OtherName    string
	Overview     string
	Version      string
	Updated      string
	Category     string
	Author       string
	Functions    string
	NoFunctions  string
	TargetUsers  string
	UseCases     string
	Limitations  string
	Examples     string
	Features     string
	Description  string
	Guides       string
	Technical    string
	Hidden       string
	SourceFile   string
	GuideTistory string
	GuideGitHub  string
}

var labelSets = map[catalog.Language]labels{
	catalog.LangKO: {
		IndexTitle:   "GPT 카탈로그",
		Switch:       "English",
		TistoryList:  "티스토리 목록",
		Search:       "이름/태그/설명 검색…",
		SearchTip:    "Tip: 이름/태그/설명에서 함께 검색됩니다.",
		Empty:        "항목 없음",
		OpenGPT:      "GPT 바로가기",
		Details:      "상세보기",
		Restricted:   "제한공개",
		URLHidden:    "URL 숨김",
		Back:         "← 목록",
		Tistory:      "티스토리",
		GitHub:       "GitHub",
		Notice:       "제한공개 항목입니다. (URL 비노출)",
		OtherName:    "English",
		Overview:     "요약 정보",
		Version:      "버전",
		Updated:      "업데이트",
		Category:     "카테고리",
		Author:       "작성자",
		Functions:    "핵심 기능",
		NoFunctions:  "등록된 기능이 없습니다.",
		TargetUsers:  "대상 사용자",
		UseCases:     "활용 사례",
		Limitations:  "제한 사항",
		Examples:     "예시 명령",
		Features:     "추가 기능",
		Description:  "설명",
		Guides:       "외부 안내",
		Technical:    "기술 정보",
		Hidden:       "(숨김)",
		SourceFile:   "원본 파일",
		GuideTistory: "티스토리 안내",
		GuideGitHub:  "GitHub 안내",
	},
	catalog.LangEN: {
		IndexTitle:   "GPT Catalog",
		Switch:       "Korean",
		TistoryList:  "Tistory list",
		Search:       "Search name/tags/description…",
		SearchTip:    "Tip: Search matches name, tags, and description.",
		Empty:        "No items",
		OpenGPT:      "Open GPT",
		Details:      "View details",
		Restricted:   "Restricted",
		URLHidden:    "URL hidden",
		Back:         "← Back",
		Tistory:      "Tistory",
		GitHub:       "GitHub",
		Notice:       "This item is restricted (URL hidden).",
		OtherName:    "Korean",
		Overview:     "Overview",
		Version:      "Version",
		Updated:      "Updated",
		Category:     "Category",
		Author:       "Author",
		Functions:    "Key functions",
		NoFunctions:  "No functions listed.",
		TargetUsers:  "Target users",
		UseCases:     "Ideal use cases",
		Limitations:  "Limitations",
		Examples:     "Example commands",
		Features:     "Additional features",
		Description:  "Description",
		Guides:       "External guides",
		Technical:    "Technical details",
		Hidden:       "(hidden)",
		SourceFile:   "Source file",
		GuideTistory: "Tistory guide",
		GuideGitHub:  "GitHub guide",
	},
}
