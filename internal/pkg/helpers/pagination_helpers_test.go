package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	page, info := Paginate(items, 2, 2)
	assert.Equal(t, []int{3, 4}, page)
	assert.Equal(t, PaginationInfo{CurrentPage: 2, TotalPages: 3, PageSize: 2, TotalItems: 5}, info)

	page, _ = Paginate(items, 3, 2)
	assert.Equal(t, []int{5}, page)

	page, info = Paginate(items, 9, 2)
	assert.Empty(t, page)
	assert.Equal(t, 3, info.CurrentPage)

	page, info = Paginate([]int{}, 1, 10)
	assert.Empty(t, page)
	assert.Equal(t, 1, info.TotalPages)
}

func TestParsePaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newContext := func(target string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", target, nil)
		return c
	}

	_, _, ok := ParsePaginationParams(newContext("/api/student"))
	assert.False(t, ok)

	page, size, ok := ParsePaginationParams(newContext("/api/student?page=3&size=1000"))
	assert.True(t, ok)
	assert.Equal(t, 3, page)
	assert.Equal(t, DefaultPageSize, size)

	page, size, ok = ParsePaginationParams(newContext("/api/student?page=0&size=5"))
	assert.True(t, ok)
	assert.Equal(t, DefaultPage, page)
	assert.Equal(t, 5, size)
}
