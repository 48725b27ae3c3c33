package naming

import (
	"testing"

	"golang.org/x/text/unicode/norm"
)

func TestParseLanguageToken(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		// English tokens
		{"report_en_v2.yaml", CodeEN},
		{"report-en.yml", CodeEN},
		{"en_research.yaml", CodeEN},
		{"desk-eng-2024.yaml", CodeEN},
		{"desk_english.yaml", CodeEN},
		{"DESK_EN.YAML", CodeEN},

		// Korean tokens
		{"guide-kr-2024.yml", CodeKO},
		{"guide_ko.yaml", CodeKO},
		{"guide_kor_v1.yaml", CodeKO},
		{"korean-guide.yaml", CodeKO},

		// No token
		{"mystery.yaml", ""},
		{"green.yaml", ""},
		{"token_list.yaml", ""},
		{"kotlin-helper.yaml", ""},
		{"screen-reader.yml", ""},

		// English wins when both appear
		{"desk_ko_en.yaml", CodeEN},

		// Directory components are ignored
		{"catalog/en/mystery.yaml", ""},
	}
	for _, tc := range cases {
		t.Run(tc.filename, func(t *testing.T) {
			got := ParseLanguageToken(tc.filename)
			if got != tc.want {
				t.Errorf("ParseLanguageToken(%q) = %q, want %q", tc.filename, got, tc.want)
			}
		})
	}
}

func TestParseLanguageToken_NFDFilename(t *testing.T) {
	name := norm.NFD.String("리서치_ko.yaml")
	if got := ParseLanguageToken(name); got != CodeKO {
		t.Errorf("got %q, want %q", got, CodeKO)
	}
}

func TestNormalizeLanguageCode(t *testing.T) {
	cases := map[string]string{
		"en":       CodeEN,
		" English": CodeEN,
		"ENG":      CodeEN,
		"ko":       CodeKO,
		"KR":       CodeKO,
		"Korean":   CodeKO,
		"kor":      CodeKO,
		"ja":       "",
		"":         "",
	}
	for in, want := range cases {
		if got := NormalizeLanguageCode(in); got != want {
			t.Errorf("NormalizeLanguageCode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Research & Data, Desk!!", "research-data-desk"},
		{"", "item"},
		{"이것은 한글", "item"},
		{"  Data Analyzer Pro  ", "data-analyzer-pro"},
		{"--already-slugged--", "already-slugged"},
		{"GPT-4o Helper", "gpt-4o-helper"},
		{"mixed 한글 Name", "mixed-name"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			if got := Slugify(tc.in); got != tc.want {
				t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSanitizeID(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Valid_ID-1", "Valid_ID-1"},
		{"g-abc123", "g-abc123"},
		{"v1.2.3", "v1.2.3"},
		{"이것은 한글", "item"},
		{"has space", "has-space"},
		{"_leading", "leading"},
		{"", "item"},
		{"  padded  ", "padded"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			if got := SanitizeID(tc.in); got != tc.want {
				t.Errorf("SanitizeID(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"desk_ko.html", "desk_ko.html"},
		{`a<b>:c"d/e\f|g?h*i.html`, "a_b__c_d_e_f_g_h_i.html"},
		{"  spaced   name.html ", "spaced_name.html"},
		{"...", "item"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			if got := SanitizeFilename(tc.in); got != tc.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestIsProbablyEnglishName(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"리서치 데스크", false},
		{"Research Desk", true},
		{"QA", true},
		{"", false},
		{"!!! ---", false},
		{"Research 데스크", false},
		{"   ", false},
		{"123", false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			if got := IsProbablyEnglishName(tc.in); got != tc.want {
				t.Errorf("IsProbablyEnglishName(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestStartsWithHangul(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"리서치", true},
		{"  데스크", true},
		{"Research 리서치", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := StartsWithHangul(tc.in); got != tc.want {
			t.Errorf("StartsWithHangul(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeSeparators(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"data-analyzer_pro", "data analyzer pro"},
		{"Survey / Weighting  Guide", "Survey Weighting Guide"},
		{"  ", ""},
	}
	for _, tc := range cases {
		if got := NormalizeSeparators(tc.in); got != tc.want {
			t.Errorf("NormalizeSeparators(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIDResolver(t *testing.T) {
	r := NewIDResolver()

	if got := r.Resolve("research-desk"); got != "research-desk" {
		t.Errorf("first claim: got %q", got)
	}
	if got := r.Resolve("research-desk"); got != "research-desk-2" {
		t.Errorf("second claim: got %q", got)
	}
	if got := r.Resolve("research-desk"); got != "research-desk-3" {
		t.Errorf("third claim: got %q", got)
	}
	if got := r.Resolve("other"); got != "other" {
		t.Errorf("unrelated base: got %q", got)
	}
}

func TestIDResolver_SkipsNaturallyTakenSuffix(t *testing.T) {
	r := NewIDResolver()
	r.Resolve("desk")
	r.Resolve("desk-2") // an entry whose own id is desk-2

	if got := r.Resolve("desk"); got != "desk-3" {
		t.Errorf("got %q, want desk-3", got)
	}
	if !r.Taken("desk-3") {
		t.Error("desk-3 should be taken")
	}
}

func TestDetailFilename(t *testing.T) {
	if got := DetailFilename("research-desk", "ko"); got != "research-desk_ko.html" {
		t.Errorf("got %q", got)
	}
	if got := DetailFilename("v1.2", "en"); got != "v1.2_en.html" {
		t.Errorf("got %q", got)
	}
}

func TestStem(t *testing.T) {
	cases := map[string]string{
		"desk_en.yaml":     "desk_en",
		"dir/desk.YML":     "desk",
		"notes.txt":        "notes.txt",
		"archive.tar.yaml": "archive.tar",
	}
	for in, want := range cases {
		if got := Stem(in); got != want {
			t.Errorf("Stem(%q) = %q, want %q", in, got, want)
		}
	}
}
