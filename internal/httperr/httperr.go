package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/serenity-studio/yoga-scheduler/internal/apperr"
)

// HTTPError is the API's error envelope.
type HTTPError struct {
	Status     string   `json:"status"`
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	Violations []string `json:"violations,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Status:  "error",
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

// FromErr maps an application error onto the wire. Unknown errors become a
// generic storage failure; the store is already consistent at this point.
func FromErr(c *gin.Context, err error) {
	if ve, ok := apperr.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, HTTPError{
			Status:     "error",
			Code:       apperr.CodeValidation,
			Message:    "入力エラー",
			Violations: ve.Violations,
		})
		return
	}

	switch {
	case apperr.IsDuplicate(err):
		Conflict(c, apperr.CodeDuplicate, "同じ日時・クラスの予約が既に存在します。")
	case apperr.IsCancellationWindow(err):
		Conflict(c, apperr.CodeWindow, "レッスンの24時間前を過ぎているため、キャンセルできません")
	case apperr.IsAlreadyCancelled(err):
		Conflict(c, apperr.CodeAlreadyCancelled, "この予約は既にキャンセルされています")
	case apperr.IsNotFound(err):
		NotFound(c, apperr.CodeNotFound, "予約が見つかりません")
	default:
		Internal(c, apperr.CodeStorage, "予約の処理中にエラーが発生しました。もう一度お試しください。")
	}
}
