package controller

import (
	"errors"
	"net/http"

	"github.com/SeakMengs/AutoSig/internal/util"
	"github.com/SeakMengs/AutoSig/pkg/autosig"
	"github.com/gin-gonic/gin"
)

type AvatarController struct {
	*baseController
}

const avatarFormField = "avatar"

func (ac AvatarController) Upload(ctx *gin.Context) {
	cfg := ac.app.Exporter.Config()

	fileHeader, err := ctx.FormFile(avatarFormField)
	if err != nil {
		ac.logger(ctx).Debugf("No avatar uploaded: %v", err)
		util.ResponseFailed(ctx, http.StatusBadRequest, "No avatar uploaded", util.GenerateErrorMessages(errors.New("avatar file is required"), avatarFormField), nil)
		return
	}

	if fileHeader.Size > cfg.AvatarMaxBytes {
		util.ResponseFailed(ctx, http.StatusRequestEntityTooLarge, "Avatar is too large", util.GenerateErrorMessages(autosig.ErrAvatarTooLarge, avatarFormField), nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ac.logger(ctx).Errorw("Failed to open uploaded avatar", "error", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to read avatar", util.GenerateErrorMessages(err, avatarFormField), nil)
		return
	}
	defer file.Close()

	avatar, err := autosig.NormalizeAvatar(file, cfg.AvatarMaxBytes, cfg.AvatarMaxDimension)
	switch {
	case errors.Is(err, autosig.ErrAvatarTooLarge):
		util.ResponseFailed(ctx, http.StatusRequestEntityTooLarge, "Avatar is too large", util.GenerateErrorMessages(err, avatarFormField), nil)
		return
	case errors.Is(err, autosig.ErrUnsupportedImage):
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid image", util.GenerateErrorMessages(err, avatarFormField), nil)
		return
	case err != nil:
		ac.logger(ctx).Errorw("Failed to normalize avatar", "error", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "Failed to read avatar", util.GenerateErrorMessages(err, avatarFormField), nil)
		return
	}

	util.ResponseSuccess(ctx, avatar)
}
