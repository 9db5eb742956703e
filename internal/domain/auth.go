package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rewardlab/backend/internal/common"
	"github.com/rewardlab/backend/internal/entity"
	"github.com/rewardlab/backend/internal/model"
	"github.com/rewardlab/backend/internal/repository"
	"github.com/rewardlab/backend/pkg/authenticator"
	"github.com/rewardlab/backend/pkg/crypto"
	"github.com/rewardlab/backend/pkg/errorx"
	"github.com/rewardlab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type AuthDomain interface {
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
}

type authDomain struct {
	userRepo repository.UserRepository
}

func NewAuthDomain(userRepo repository.UserRepository) *authDomain {
	return &authDomain{userRepo: userRepo}
}

// Login exchanges Telegram init data for an access token, creating the
// account on first contact.
func (d *authDomain) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	cfg := xcontext.Configs(ctx)
	initData, err := authenticator.VerifyInitData(
		req.InitData, cfg.Telegram.BotToken, cfg.Auth.SkipVerification)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot verify the init data: %v", err)
		return nil, errorx.New(errorx.Unauthenticated, "Invalid init data")
	}

	user, err := d.ensureUser(ctx, initData.User)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot ensure the user account: %v", err)
		return nil, errorx.Unknown
	}

	token, err := xcontext.TokenEngine(ctx).Generate(
		cfg.Auth.AccessToken.Expiration,
		model.AccessToken{
			ID:         user.ID,
			TelegramID: user.TelegramID,
			Name:       user.Name,
		})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate the access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LoginResponse{
		AccessToken: token,
		User:        common.ConvertUser(user),
	}, nil
}

func (d *authDomain) ensureUser(ctx context.Context, tgUser authenticator.TelegramUser) (*entity.User, error) {
	user, err := d.userRepo.GetByTelegramID(ctx, tgUser.ID)
	if err == nil {
		if name := tgUser.DisplayName(); name != user.Name {
			if err := d.userRepo.UpdateName(ctx, user.ID, name); err != nil {
				xcontext.Logger(ctx).Warnf("Cannot refresh the user name: %v", err)
			} else {
				user.Name = name
			}
		}

		return user, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = &entity.User{
		Base:         entity.Base{ID: uuid.NewString()},
		TelegramID:   tgUser.ID,
		Name:         tgUser.DisplayName(),
		Role:         entity.UserRole,
		ReferralCode: crypto.GenerateRandomAlphabet(8),
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		// A concurrent login may have created the account in between.
		existing, getErr := d.userRepo.GetByTelegramID(ctx, tgUser.ID)
		if getErr != nil {
			return nil, err
		}

		return existing, nil
	}

	return user, nil
}
