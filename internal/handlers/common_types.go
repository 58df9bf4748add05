package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/library_management/pkg/utils"
)

// listParams 提取列表接口通用的搜索与分页参数。
// 搜索关键字做大小写折叠，供仓库层的不区分大小写匹配使用。
func listParams(c *gin.Context) (search string, page, pageSize int) {
	search = utils.FoldSearchTerm(c.Query("search"))
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	page, pageSize = utils.NormalizePageParams(page, pageSize)
	return search, page, pageSize
}

// idParam 解析路径中的数字ID，非法时直接返回400响应
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		utils.RespondValidationError(c, "无效的ID")
		return 0, false
	}
	return id, true
}
