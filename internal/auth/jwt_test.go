package auth

import (
	"testing"
	"time"

	"github.com/library_management/configs"
)

func init() {
	configs.AppConfig = configs.Configuration{
		JWTSecret:   "test-secret",
		TokenExpiry: time.Hour,
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	tokenString, claims, err := GenerateToken(42, "alice", "admin")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if claims.ID == "" {
		t.Error("JTI 不应为空")
	}

	parsed, err := ParseToken(tokenString)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if parsed.UserID != 42 || parsed.Username != "alice" || parsed.Role != "admin" {
		t.Errorf("解析的声明不符: %+v", parsed)
	}
	if parsed.ID != claims.ID {
		t.Errorf("JTI 不一致: %q vs %q", parsed.ID, claims.ID)
	}
}

func TestGenerateTokenDefaultsRole(t *testing.T) {
	tokenString, _, err := GenerateToken(1, "bob", "")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	parsed, err := ParseToken(tokenString)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if parsed.Role != "user" {
		t.Errorf("Role = %q, want %q", parsed.Role, "user")
	}
}

func TestParseTokenRejectsTampered(t *testing.T) {
	tokenString, _, err := GenerateToken(1, "alice", "user")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ParseToken(tokenString + "x"); err == nil {
		t.Error("被篡改的 Token 应解析失败")
	}
	if _, err := ParseToken("not.a.token"); err == nil {
		t.Error("非法 Token 应解析失败")
	}
}

func TestDenylistRevokesToken(t *testing.T) {
	tokenString, claims, err := GenerateToken(1, "alice", "user")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ParseToken(tokenString); err != nil {
		t.Fatalf("注销前 Token 应有效: %v", err)
	}

	AddToDenylist(claims.ID, claims.ExpiresAt.Time)

	if !IsTokenDenylisted(claims.ID) {
		t.Error("JTI 应在拒绝列表中")
	}
	if _, err := ParseToken(tokenString); err != ErrTokenDenylisted {
		t.Errorf("已注销 Token 应返回 ErrTokenDenylisted, got %v", err)
	}
}

func TestDenylistSweepsExpiredEntries(t *testing.T) {
	AddToDenylist("expired-jti", time.Now().Add(-time.Minute))
	if IsTokenDenylisted("expired-jti") {
		t.Error("已过期的 JTI 不应再被视为注销状态")
	}

	// 下一次写入时过期条目被清理
	AddToDenylist("another-jti", time.Now().Add(time.Hour))
	denylistMutex.RLock()
	_, stillThere := tokenDenylist["expired-jti"]
	denylistMutex.RUnlock()
	if stillThere {
		t.Error("过期条目应在写入时被清理")
	}
}
