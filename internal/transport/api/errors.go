package api

import (
	"errors"
	"net/http"

	"github.com/fsdevblog/gumball-machine/internal/domain"
	"github.com/gin-gonic/gin"
)

// statusMapping соответствие ошибок автомата http статусам. Текст ошибки из таблицы отдается клиенту.
var statusMapping = []struct {
	target error
	status int
}{
	{target: domain.ErrRecordNotFound, status: http.StatusNotFound},
	{target: domain.ErrInsufficientPayment, status: http.StatusPaymentRequired},
	{target: domain.ErrInsufficientFunds, status: http.StatusPaymentRequired},
	{target: domain.ErrInsufficientInventory, status: http.StatusConflict},
	{target: domain.ErrRulesLocked, status: http.StatusConflict},
	{target: domain.ErrStaffBadgesDisabled, status: http.StatusConflict},
	{target: domain.ErrWrongTokenType, status: http.StatusUnprocessableEntity},
	{target: domain.ErrInvalidAmount, status: http.StatusUnprocessableEntity},
	{target: domain.ErrInvalidPrice, status: http.StatusUnprocessableEntity},
	{target: domain.ErrInvalidRule, status: http.StatusUnprocessableEntity},
	{target: domain.ErrUnknownOperation, status: http.StatusUnprocessableEntity},
}

// abortWithServiceError завершает запрос со статусом, соответствующим ошибке сервиса. Исходная
// ошибка сохраняется приватной для лога.
func abortWithServiceError(c *gin.Context, err error) {
	var authErr *domain.AuthorizationError
	if errors.As(err, &authErr) {
		_ = c.AbortWithError(http.StatusForbidden, authErr).SetType(gin.ErrorTypePublic)
		_ = c.Error(err).SetType(gin.ErrorTypePrivate)
		return
	}

	for _, m := range statusMapping {
		if errors.Is(err, m.target) {
			_ = c.AbortWithError(m.status, m.target).SetType(gin.ErrorTypePublic)
			_ = c.Error(err).SetType(gin.ErrorTypePrivate)
			return
		}
	}
	_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
}
