package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/AngelinAnto/OneAdmit/internal/controller/callbacks/common/formatting"
	"github.com/AngelinAnto/OneAdmit/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// maxUploadSize caps photos taken from Telegram
const maxUploadSize = 5 << 20

// IsPhotoUpload matches messages carrying a photo
func IsPhotoUpload(update *models.Update) bool {
	return update.Message != nil && len(update.Message.Photo) > 0
}

// HandlePhoto stores a photo sent with the caption /photo (student) or /logo (college)
func (h *Handlers) HandlePhoto(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID
	caption := strings.ToLower(strings.TrimSpace(update.Message.Caption))

	switch {
	case strings.HasPrefix(caption, "/photo") && user.IsStudent():
	case strings.HasPrefix(caption, "/logo") && user.IsCollegeAdmin():
	default:
		h.sendMessage(ctx, b, chatID, "🖼 To upload a picture, send it with the caption /photo (students) or /logo (colleges).")
		return
	}

	// the last size is the largest one
	photo := update.Message.Photo[len(update.Message.Photo)-1]
	if photo.FileSize > maxUploadSize {
		h.sendError(ctx, b, chatID, "❌ The picture is too large. Please send one under 5 MB.")
		return
	}

	h.guarded(ctx, b, update, state.OpUpload, func() {
		body, filename, err := h.downloadFile(ctx, b, photo.FileID)
		if err != nil {
			h.replyError(ctx, b, chatID, err, "download photo")
			return
		}
		defer body.Close()
		data := io.LimitReader(body, maxUploadSize)

		if user.IsStudent() {
			profile, err := h.profileService.UploadPhoto(ctx, user, filename, "image/jpeg", data)
			if err != nil {
				h.replyError(ctx, b, chatID, err, "upload photo")
				return
			}
			h.sendHTML(ctx, b, chatID, "✅ Photo saved\n\n"+formatting.ProfileCard(profile), nil)
			return
		}

		college, err := h.collegeService.UploadLogo(ctx, user, filename, "image/jpeg", data)
		if err != nil {
			h.replyError(ctx, b, chatID, err, "upload logo")
			return
		}
		h.sendHTML(ctx, b, chatID, "✅ Logo saved\n\n"+formatting.CollegeCard(college), nil)
	})
}

// downloadFile fetches a file from the Telegram file server
func (h *Handlers) downloadFile(ctx context.Context, b *bot.Bot, fileID string) (io.ReadCloser, string, error) {
	file, err := b.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, "", fmt.Errorf("get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.FileDownloadLink(file), nil)
	if err != nil {
		return nil, "", fmt.Errorf("build download request: %w", err)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download file: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, "", fmt.Errorf("download file: unexpected status %d", resp.StatusCode)
	}

	h.logger.Debug("File downloaded",
		zap.String("file_id", fileID),
		zap.String("file_path", file.FilePath),
	)

	filename := path.Base(file.FilePath)
	if filename == "." || filename == "/" {
		filename = file.FileUniqueID + ".jpg"
	}

	return resp.Body, filename, nil
}
