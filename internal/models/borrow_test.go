package models

import "testing"

func strPtr(s string) *string { return &s }

func TestCalculateBorrowStatus(t *testing.T) {
	today := "2026-03-15"

	tests := []struct {
		name       string
		returnDate *string
		dueDate    string
		want       string
	}{
		{
			name:       "有归还日期即为已归还",
			returnDate: strPtr("2026-03-10"),
			dueDate:    "2026-03-01",
			want:       BorrowStatusReturned,
		},
		{
			name:       "已归还优先于超期判断",
			returnDate: strPtr("2026-03-20"),
			dueDate:    "2026-03-01",
			want:       BorrowStatusReturned,
		},
		{
			name:       "应还日期早于今天为超期",
			returnDate: nil,
			dueDate:    "2026-03-14",
			want:       BorrowStatusOverdue,
		},
		{
			name:       "应还日期等于今天为借阅中",
			returnDate: nil,
			dueDate:    "2026-03-15",
			want:       BorrowStatusBorrowed,
		},
		{
			name:       "应还日期晚于今天为借阅中",
			returnDate: nil,
			dueDate:    "2026-04-01",
			want:       BorrowStatusBorrowed,
		},
		{
			name:       "空字符串归还日期视为未归还",
			returnDate: strPtr(""),
			dueDate:    "2026-03-01",
			want:       BorrowStatusOverdue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateBorrowStatus(tt.returnDate, tt.dueDate, today)
			if got != tt.want {
				t.Errorf("CalculateBorrowStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDeriveStatusDoesNotMutate(t *testing.T) {
	b := Borrow{DueDate: "2026-01-01", Status: BorrowStatusBorrowed}

	if got := b.DeriveStatus("2026-03-15"); got != BorrowStatusOverdue {
		t.Errorf("DeriveStatus() = %q, want %q", got, BorrowStatusOverdue)
	}
	if b.Status != BorrowStatusBorrowed {
		t.Errorf("DeriveStatus 修改了结构体字段: %q", b.Status)
	}
}
