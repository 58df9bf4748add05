package utils

import "testing"

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"标准格式", "2026-03-15", "2026-03-15", false},
		{"斜杠分隔", "2026/03/15", "2026-03-15", false},
		{"不补零", "2026-3-5", "2026-03-05", false},
		{"混合补零", "2026-3-15", "2026-03-15", false},
		{"带空白", "  2026-03-15  ", "2026-03-15", false},
		{"空字符串", "", "", true},
		{"非法日期", "not-a-date", "", true},
		{"只有年月", "2026-03", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDate(%q) 应返回错误", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) failed: %v", tt.input, err)
			}
			if got := DateString(parsed); got != tt.want {
				t.Errorf("ParseDate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFoldSearchTerm(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Golang", "golang"},
		{"  GO  ", "go"},
		{"三体", "三体"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := FoldSearchTerm(tt.input); got != tt.want {
			t.Errorf("FoldSearchTerm(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizePageParams(t *testing.T) {
	tests := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"合法参数原样返回", 2, 20, 2, 20},
		{"页码小于1回退到1", 0, 10, 1, 10},
		{"负页码回退到1", -3, 10, 1, 10},
		{"每页数量为0回退到10", 1, 0, 1, 10},
		{"每页数量超上限截断", 1, 5000, 1, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, pageSize := NormalizePageParams(tt.page, tt.pageSize)
			if page != tt.wantPage || pageSize != tt.wantPageSize {
				t.Errorf("NormalizePageParams(%d, %d) = (%d, %d), want (%d, %d)",
					tt.page, tt.pageSize, page, pageSize, tt.wantPage, tt.wantPageSize)
			}
		})
	}
}
