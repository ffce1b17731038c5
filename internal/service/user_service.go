package service

import (
	"community/internal/api/dto"
	"community/internal/model"
	"community/internal/pkg/consts"
	"community/internal/pkg/redis"
	"community/internal/pkg/security"
	"community/internal/repository"
	"context"
	log "log/slog"

	"github.com/jinzhu/copier"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterDTO) error
	Login(ctx context.Context, req *dto.CredentialDTO) (*dto.LoginResultDTO, error)
	Logout(ctx context.Context, token string) error
	GetUserInfo(ctx context.Context, id uint64) (*dto.UserInfoDTO, error)
}

type userServiceImpl struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

func (s *userServiceImpl) Register(ctx context.Context, req *dto.RegisterDTO) error {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		log.ErrorContext(ctx, "查询用户失败", "err", err)
		return UnExpectedError
	}
	if existing != nil {
		return ErrEmailExist
	}

	taken, err := s.userRepo.ExistsByNickname(ctx, req.Nickname)
	if err != nil {
		log.ErrorContext(ctx, "查询昵称失败", "err", err)
		return UnExpectedError
	}
	if taken {
		return ErrNicknameExist
	}

	hashed, err := security.HashPassword(req.Password)
	if err != nil {
		log.ErrorContext(ctx, "密码哈希失败", "err", err)
		return UnExpectedError
	}

	user := &model.User{
		Email:    req.Email,
		Nickname: req.Nickname,
		Password: hashed,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		log.ErrorContext(ctx, "创建用户失败", "err", err)
		return UnExpectedError
	}

	return nil
}

func (s *userServiceImpl) Login(ctx context.Context, req *dto.CredentialDTO) (*dto.LoginResultDTO, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		log.ErrorContext(ctx, "查询用户失败", "err", err)
		return nil, UnExpectedError
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := security.CheckPasswordHash(req.Password, user.Password); err != nil {
		return nil, ErrPasswordIncorrect
	}

	token, err := security.GenerateToken(user.ID)
	if err != nil {
		log.ErrorContext(ctx, "签发令牌失败", "err", err)
		return nil, UnExpectedError
	}

	info := &dto.UserInfoDTO{UserID: user.ID}
	if err := copier.Copy(info, user); err != nil {
		log.ErrorContext(ctx, "用户信息拷贝失败", "err", err)
		return nil, UnExpectedError
	}

	return &dto.LoginResultDTO{Token: token, User: info}, nil
}

// Logout 拉黑 token 签名，有效期与令牌一致
func (s *userServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return ErrParamInvalid
	}
	err = redis.SetWithExpiration(ctx, consts.TokenBlockKey+signature, true, security.TokenTTL())
	if err != nil {
		log.ErrorContext(ctx, "登出写入黑名单失败", "err", err)
		return UnExpectedError
	}
	return nil
}

func (s *userServiceImpl) GetUserInfo(ctx context.Context, id uint64) (*dto.UserInfoDTO, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		log.ErrorContext(ctx, "查询用户失败", "err", err)
		return nil, UnExpectedError
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	info := &dto.UserInfoDTO{UserID: user.ID}
	if err := copier.Copy(info, user); err != nil {
		log.ErrorContext(ctx, "用户信息拷贝失败", "err", err)
		return nil, UnExpectedError
	}
	return info, nil
}
