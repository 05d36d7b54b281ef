// Package handler はoracleフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"lunch_oracle/internal/api"
	"lunch_oracle/internal/feature/oracle/domain"
	"lunch_oracle/internal/feature/oracle/domain/entity"
	"lunch_oracle/internal/feature/oracle/usecase"
)

// OracleUsecase はセッション操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type OracleUsecase interface {
	StartSession(ctx context.Context, image []byte, label string) (*entity.Session, error)
	ResubmitImage(ctx context.Context, id string, image []byte, label string) (*entity.Session, error)
	OverrideLabel(ctx context.Context, id, label string) (*entity.Session, error)
	ConfirmLabel(ctx context.Context, id string) (*entity.Session, error)
	Reflect(ctx context.Context, id string, reflections []string) (*entity.Session, error)
	GetSession(ctx context.Context, id string) (*entity.Session, error)
}

// TokenIssuer はセッションへのアクセストークンを発行します。
type TokenIssuer interface {
	GenerateToken(sessionID string) (string, error)
}

// OracleHandler はoracleセッションのHTTPリクエストを処理します。
type OracleHandler struct {
	uc     OracleUsecase
	tokens TokenIssuer
}

// NewOracleHandler はOracleHandlerの新しいインスタンスを生成します。
func NewOracleHandler(uc OracleUsecase, tokens TokenIssuer) *OracleHandler {
	return &OracleHandler{uc: uc, tokens: tokens}
}

// StartSession は画像（と任意の上書きラベル）からセッションを開始します。
//
// エンドポイント: POST /v1/oracle/sessions
// Content-Type: multipart/form-data
// フィールド: image（画像ファイル、最大10MB）、label（任意）
func (h *OracleHandler) StartSession(c *gin.Context) {
	image, ok := h.readImage(c)
	if !ok {
		return
	}

	s, err := h.uc.StartSession(c.Request.Context(), image, c.PostForm("label"))
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := h.tokens.GenerateToken(s.ID)
	if err != nil {
		slog.Error("トークンの発行に失敗", "error", err, "session_id", s.ID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "トークンの発行に失敗しました"})
		return
	}

	res := toSessionResponse(s)
	res.Token = token
	c.JSON(http.StatusCreated, res)
}

// GetSession はセッションの現在の状態を返します。
//
// エンドポイント: GET /v1/oracle/sessions/:id
func (h *OracleHandler) GetSession(c *gin.Context) {
	s, err := h.uc.GetSession(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(s))
}

// ResubmitImage は画像を送り直し、分類からやり直します。
//
// エンドポイント: POST /v1/oracle/sessions/:id/image
func (h *OracleHandler) ResubmitImage(c *gin.Context) {
	image, ok := h.readImage(c)
	if !ok {
		return
	}
	s, err := h.uc.ResubmitImage(c.Request.Context(), c.Param("id"), image, c.PostForm("label"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(s))
}

// OverrideLabel は分類結果をユーザー指定のラベルで上書きします。
//
// エンドポイント: POST /v1/oracle/sessions/:id/label
// Content-Type: application/json
func (h *OracleHandler) OverrideLabel(c *gin.Context) {
	var req api.LabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("ラベル上書きリクエストのバリデーションに失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "ラベルが必要です"})
		return
	}
	s, err := h.uc.OverrideLabel(c.Request.Context(), c.Param("id"), req.Label)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(s))
}

// ConfirmLabel は現在のラベルを確定します。
//
// エンドポイント: POST /v1/oracle/sessions/:id/confirm
func (h *OracleHandler) ConfirmLabel(c *gin.Context) {
	s, err := h.uc.ConfirmLabel(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(s))
}

// Reflect はリフレクションを受け取り、お告げと店舗を返します。
//
// エンドポイント: POST /v1/oracle/sessions/:id/reflections
// Content-Type: application/json
func (h *OracleHandler) Reflect(c *gin.Context) {
	var req api.ReflectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("リフレクションのバリデーションに失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "リフレクションが必要です"})
		return
	}
	s, err := h.uc.Reflect(c.Request.Context(), c.Param("id"), req.Reflections)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(s))
}

// readImage はマルチパートのimageフィールドを読み取ります。未指定の場合はnilを返します。
// 画像とラベルの両方が未指定かどうかはユースケースで検証します。
func (h *OracleHandler) readImage(c *gin.Context) ([]byte, bool) {
	file, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, true
		}
		slog.Warn("画像ファイルの取得に失敗", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "画像ファイルを読み取れません"})
		return nil, false
	}

	data, err := readFile(file)
	if err != nil {
		slog.Error("画像データの読み取りに失敗", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "画像の読み込みに失敗しました"})
		return nil, false
	}
	return data, true
}

// readFile はファイルを上限+1バイトまで読みます。上限超過の判定はユースケースで行います。
func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("画像ファイルのクローズに失敗", "error", err)
		}
	}()
	return io.ReadAll(io.LimitReader(f, usecase.MaxImageSize+1))
}

// writeError はアプリケーションエラーをHTTPステータスに変換して書き込みます。
func writeError(c *gin.Context, err error) {
	var ite *entity.InvalidTransitionError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "セッションが見つかりません"})
	case errors.As(err, &ite):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: ite.Error()})
	default:
		slog.Error("セッション操作に失敗", "error", err, "session_id", c.Param("id"))
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "セッションの処理に失敗しました"})
	}
}
