package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/library_management/internal/models"
	"github.com/library_management/internal/repositories"
	"github.com/library_management/pkg/utils"
)

func newBookFixture(t *testing.T) (BookService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewBookService(repositories.NewGormBookRepository(db)), db
}

func intPtr(n int) *int { return &n }

func bookPayload(title string) models.BookPayload {
	return models.BookPayload{
		Title:       title,
		Author:      "作者",
		Publisher:   "出版社",
		PublishDate: "2020-01-01",
	}
}

func TestCreateBookDefaults(t *testing.T) {
	service, _ := newBookFixture(t)

	book, err := service.CreateBook(bookPayload("默认值测试"))
	require.NoError(t, err)
	assert.Equal(t, 10, book.Stock, "缺省库存为10")
	assert.Equal(t, "未分类", book.Category)
	assert.True(t, strings.HasPrefix(book.ISBN, "ISBN-"), "缺省ISBN自动生成")
}

func TestCreateBookExplicitValues(t *testing.T) {
	service, _ := newBookFixture(t)

	payload := bookPayload("完整信息测试")
	payload.Stock = intPtr(0)
	payload.ISBN = "978-7-111-54742-6"
	payload.Category = "计算机"

	book, err := service.CreateBook(payload)
	require.NoError(t, err)
	assert.Equal(t, 0, book.Stock, "显式的0库存不应被默认值覆盖")
	assert.Equal(t, "978-7-111-54742-6", book.ISBN)
	assert.Equal(t, "计算机", book.Category)
}

func TestCreateBookValidation(t *testing.T) {
	service, _ := newBookFixture(t)

	payload := bookPayload("负库存")
	payload.Stock = intPtr(-1)
	_, err := service.CreateBook(payload)
	assert.ErrorIs(t, err, ErrInvalidStock)

	payload = bookPayload("坏日期")
	payload.PublishDate = "不是日期"
	_, err = service.CreateBook(payload)
	assert.ErrorIs(t, err, utils.ErrInvalidDateFormat)
}

func TestUpdateBookKeepsOriginalWhenEmpty(t *testing.T) {
	service, db := newBookFixture(t)
	book := seedBook(t, db, "更新测试", 5)
	require.NoError(t, db.Model(book).Updates(map[string]interface{}{
		"isbn": "ORIGINAL-ISBN", "price": 42.5, "category": "文学",
	}).Error)

	payload := bookPayload("更新后的书名")
	updated, err := service.UpdateBook(book.ID, payload)
	require.NoError(t, err)
	assert.Equal(t, "更新后的书名", updated.Title)
	assert.Equal(t, "ORIGINAL-ISBN", updated.ISBN, "缺省ISBN保留原值")
	assert.Equal(t, 42.5, updated.Price, "缺省价格保留原值")
	assert.Equal(t, "文学", updated.Category, "缺省分类保留原值")
	assert.Equal(t, 5, updated.Stock, "缺省库存保留原值")
}

func TestDeleteBookSoftDeletes(t *testing.T) {
	service, db := newBookFixture(t)
	book := seedBook(t, db, "删除测试", 5)

	require.NoError(t, service.DeleteBook(book.ID))

	_, err := service.GetBook(book.ID)
	assert.ErrorIs(t, err, ErrBookNotFound)

	// 软删除的记录仍在数据库中
	var count int64
	require.NoError(t, db.Unscoped().Model(&models.Book{}).Where("id = ?", book.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	assert.ErrorIs(t, service.DeleteBook(book.ID), ErrBookNotFound)
}

func TestSetStock(t *testing.T) {
	service, db := newBookFixture(t)
	book := seedBook(t, db, "库存设置测试", 5)

	require.NoError(t, service.SetStock(book.ID, 0))
	assert.Equal(t, 0, bookStock(t, db, book.ID))

	assert.ErrorIs(t, service.SetStock(book.ID, -1), ErrInvalidStock)
	assert.ErrorIs(t, service.SetStock(999, 5), ErrBookNotFound)
}

func TestListBooksSearchCaseInsensitive(t *testing.T) {
	service, db := newBookFixture(t)
	seedBook(t, db, "The Go Programming Language", 5)
	seedBook(t, db, "Python入门", 5)

	// 搜索词在查询前经过大小写折叠（与 handler 的 FoldSearchTerm 一致）
	books, total, err := service.ListBooks(utils.FoldSearchTerm("GO"), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, books, 1)
	assert.Equal(t, "The Go Programming Language", books[0].Title)
}

func TestListBooksPagination(t *testing.T) {
	service, db := newBookFixture(t)
	for i := 0; i < 15; i++ {
		seedBook(t, db, "分页测试", 1)
	}

	books, total, err := service.ListBooks("", 2, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
	assert.Len(t, books, 5)
}
