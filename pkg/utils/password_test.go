package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "admin123" {
		t.Fatal("哈希结果不应等于明文")
	}
	if !VerifyPassword("admin123", hash) {
		t.Error("正确密码校验失败")
	}
	if VerifyPassword("wrong", hash) {
		t.Error("错误密码不应通过校验")
	}
}

func TestIsPlainPassword(t *testing.T) {
	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"明文短密码", "admin123", true},
		{"空字符串", "", true},
		{"60位但无bcrypt前缀", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", true},
		{"真实bcrypt哈希", hash, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPlainPassword(tt.password); got != tt.want {
				t.Errorf("IsPlainPassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}
