package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/library_management/internal/models"
	"github.com/library_management/internal/repositories"
	"github.com/library_management/pkg/utils"
)

// 借阅工作流的错误定义
var (
	ErrBorrowNotFound    = errors.New("借阅记录不存在")
	ErrBookNotFound      = errors.New("图书不存在")
	ErrStockInsufficient = errors.New("库存不足")
	ErrBorrowerOverdue   = errors.New("存在逾期图书")
	ErrBlankFields       = errors.New("必填字段不能为空")
)

// BorrowService 定义了借阅工作流的接口。
// 库存与借阅状态的一致性全部由该服务维护：
// 借出扣减库存、归还恢复库存、取消归还重新扣减、删除未归还记录恢复库存。
type BorrowService interface {
	CreateBorrow(payload models.BorrowPayload, actingUserID int64) (*models.Borrow, error)
	ListBorrows(search string, page, pageSize int) ([]models.Borrow, int64, error)
	UpdateBorrow(id int64, payload models.BorrowPayload) error
	DeleteBorrow(id int64) error
	CountUnreturned(userID int64) (int64, error)
}

type borrowService struct {
	borrowRepo repositories.BorrowRepository
	bookRepo   repositories.BookRepository
	now        func() time.Time // 注入时钟，便于测试逾期判断
}

// NewBorrowService 创建一个新的 borrowService 实例
func NewBorrowService(borrowRepo repositories.BorrowRepository, bookRepo repositories.BookRepository, now func() time.Time) BorrowService {
	if now == nil {
		now = time.Now
	}
	return &borrowService{borrowRepo: borrowRepo, bookRepo: bookRepo, now: now}
}

// CreateBorrow 处理新增借阅的业务逻辑。
// 校验顺序：图书存在 → 借阅人逾期锁 → 条件扣减库存 → 插入记录。
// 库存扣减使用单条条件更新，库存为0时不产生任何变更。
func (s *borrowService) CreateBorrow(payload models.BorrowPayload, actingUserID int64) (*models.Borrow, error) {
	bookTitle := strings.TrimSpace(payload.BookTitle)
	borrowerName := strings.TrimSpace(payload.BorrowerName)
	if bookTitle == "" || borrowerName == "" || payload.BorrowDate == "" || payload.DueDate == "" {
		return nil, ErrBlankFields
	}

	book, err := s.bookRepo.GetByID(payload.BookID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	// 逾期锁：借阅人存在任何逾期未还的记录时，禁止开启新的借阅
	overdueTitles, err := s.overdueTitlesFor(borrowerName)
	if err != nil {
		return nil, err
	}
	if len(overdueTitles) > 0 {
		return nil, fmt.Errorf("借阅人\"%s\"%w：%s，请先归还逾期图书后再借阅新图书",
			borrowerName, ErrBorrowerOverdue, strings.Join(overdueTitles, "、"))
	}

	if err := s.bookRepo.DecrementStockIfAvailable(book.ID); err != nil {
		if errors.Is(err, repositories.ErrStockUnavailable) {
			return nil, fmt.Errorf("图书《%s》%w，无法借阅", book.Title, ErrStockInsufficient)
		}
		return nil, err
	}

	userID := actingUserID
	if userID == 0 {
		userID = payload.UserID
	}
	if userID == 0 {
		userID = 1 // 默认用户ID
	}

	borrow := &models.Borrow{
		UserID:       userID,
		BookID:       payload.BookID,
		BookTitle:    bookTitle,
		BorrowerName: borrowerName,
		BorrowDate:   payload.BorrowDate,
		DueDate:      payload.DueDate,
		ReturnDate:   normalizeReturnDate(payload.ReturnDate),
		Status:       models.BorrowStatusBorrowed,
	}
	created, err := s.borrowRepo.Create(borrow)
	if err != nil {
		// 插入失败时恢复已扣减的库存，尽量保持两者一致
		if restoreErr := s.bookRepo.IncrementStock(book.ID); restoreErr != nil {
			log.Printf("恢复图书 %d 库存失败: %v", book.ID, restoreErr)
		}
		return nil, err
	}

	log.Printf("创建借阅: %s 借阅《%s》 (ID: %d)", borrowerName, bookTitle, created.ID)
	return created, nil
}

// ListBorrows 获取借阅列表，状态在读取时重新计算
func (s *borrowService) ListBorrows(search string, page, pageSize int) ([]models.Borrow, int64, error) {
	borrows, total, err := s.borrowRepo.List(search, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	today := utils.DateString(s.now())
	for i := range borrows {
		borrows[i].Status = borrows[i].DeriveStatus(today)
	}
	return borrows, total, nil
}

// UpdateBorrow 全量替换借阅记录，并根据归还日期的变化调整库存：
//   - 归还（原为空，新值非空）：库存 +1
//   - 取消归还（原非空，新值为空）：条件扣减库存，库存为0时拒绝
//   - 无变化：不触碰库存
//
// 原记录的创建时间与所属用户ID保持不变；状态取请求值，缺省时沿用原状态。
func (s *borrowService) UpdateBorrow(id int64, payload models.BorrowPayload) error {
	bookTitle := strings.TrimSpace(payload.BookTitle)
	borrowerName := strings.TrimSpace(payload.BorrowerName)
	if bookTitle == "" || borrowerName == "" || payload.BorrowDate == "" || payload.DueDate == "" {
		return ErrBlankFields
	}

	original, err := s.borrowRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrBorrowNotFound
		}
		return err
	}

	newReturnDate := normalizeReturnDate(payload.ReturnDate)
	hadReturnDate := original.ReturnDate != nil && *original.ReturnDate != ""
	hasReturnDate := newReturnDate != nil

	switch {
	case !hadReturnDate && hasReturnDate:
		// 归还图书，恢复库存
		if err := s.bookRepo.IncrementStock(payload.BookID); err != nil {
			if !errors.Is(err, repositories.ErrRecordNotFound) {
				return err
			}
			// 图书已被删除时跳过库存调整
		} else {
			log.Printf("归还图书《%s》，库存已恢复", bookTitle)
		}
	case hadReturnDate && !hasReturnDate:
		// 取消归还，重新扣减库存
		if err := s.bookRepo.DecrementStockIfAvailable(payload.BookID); err != nil {
			if errors.Is(err, repositories.ErrStockUnavailable) {
				return fmt.Errorf("图书《%s》%w，无法取消归还", bookTitle, ErrStockInsufficient)
			}
			return err
		}
		log.Printf("取消归还图书《%s》，库存已扣减", bookTitle)
	}

	status := payload.Status
	if status == "" {
		status = original.Status
	}

	updates := map[string]interface{}{
		"user_id":       original.UserID, // 保留原始用户ID
		"book_id":       payload.BookID,
		"book_title":    bookTitle,
		"borrower_name": borrowerName,
		"borrow_date":   payload.BorrowDate,
		"due_date":      payload.DueDate,
		"return_date":   newReturnDate,
		"status":        status,
	}
	if err := s.borrowRepo.Update(id, updates); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrBorrowNotFound
		}
		return err
	}

	log.Printf("更新借阅记录: %s 借阅《%s》 (ID: %d)", borrowerName, bookTitle, id)
	return nil
}

// DeleteBorrow 删除借阅记录。未归还的记录删除前恢复1个库存。
func (s *borrowService) DeleteBorrow(id int64) error {
	borrow, err := s.borrowRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrBorrowNotFound
		}
		return err
	}

	if borrow.ReturnDate == nil || *borrow.ReturnDate == "" {
		if err := s.bookRepo.IncrementStock(borrow.BookID); err != nil {
			if !errors.Is(err, repositories.ErrRecordNotFound) {
				return err
			}
		} else {
			log.Printf("删除未归还借阅，已恢复图书《%s》库存", borrow.BookTitle)
		}
	}

	if err := s.borrowRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return ErrBorrowNotFound
		}
		return err
	}
	log.Printf("删除借阅记录: %s 借阅《%s》 (ID: %d)", borrow.BorrowerName, borrow.BookTitle, id)
	return nil
}

// CountUnreturned 统计指定用户当前未归还的借阅数量
func (s *borrowService) CountUnreturned(userID int64) (int64, error) {
	return s.borrowRepo.CountUnreturnedByUser(userID)
}

// overdueTitlesFor 返回指定借阅人全部逾期未还图书的书名
func (s *borrowService) overdueTitlesFor(borrowerName string) ([]string, error) {
	unreturned, err := s.borrowRepo.ListUnreturnedByBorrower(borrowerName)
	if err != nil {
		return nil, err
	}
	today := utils.DateString(s.now())
	var titles []string
	for _, b := range unreturned {
		if b.DueDate < today {
			titles = append(titles, b.BookTitle)
		}
	}
	return titles, nil
}

// normalizeReturnDate 把空字符串归一化为 nil
func normalizeReturnDate(returnDate *string) *string {
	if returnDate == nil || strings.TrimSpace(*returnDate) == "" {
		return nil
	}
	trimmed := strings.TrimSpace(*returnDate)
	return &trimmed
}
