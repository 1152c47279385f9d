package usecase

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt"

	"social-dashboard/domain/dto"
	"social-dashboard/domain/model"
	"social-dashboard/domain/repository"
	"social-dashboard/infrastructure/configuration"
	"social-dashboard/infrastructure/logger"
	"social-dashboard/infrastructure/utils"
)

type IUserUsecase interface {
	Login(ctx context.Context, req model.ReqLogin) dto.Res
	Register(ctx context.Context, req model.ReqRegister) dto.Res
}

type userUsecase struct {
	userRepository repository.IUser
}

func NewUserUsecase(userRepository repository.IUser) IUserUsecase {
	return &userUsecase{userRepository: userRepository}
}

func (u *userUsecase) Login(ctx context.Context, req model.ReqLogin) dto.Res {
	user, err := u.userRepository.GetByUserName(ctx, req.UserName)
	if err != nil {
		logger.GetLogger().WithField("userName", req.UserName).Warn("login for unknown user")
		return dto.Res{ResponseCode: "401", ResponseMessage: "Invalid username or password"}
	}
	if user.Password != req.Password {
		return dto.Res{ResponseCode: "401", ResponseMessage: "Invalid username or password"}
	}

	now := time.Now().UTC()
	claims := model.UserClaims{
		UserName: user.UserName,
		StandardClaims: jwt.StandardClaims{
			Subject:   user.UserName,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(24 * time.Hour).Unix(),
		},
	}
	token, err := utils.GenerateTokenWithClaims(claims, configuration.C.App.SecretKey)
	if err != nil {
		return dto.Res{ResponseCode: "500", ResponseMessage: "Could not generate token"}
	}
	return dto.Res{
		ResponseCode:    "200",
		ResponseMessage: "Success",
		Data:            map[string]interface{}{"token": token, "user": user},
	}
}

func (u *userUsecase) Register(ctx context.Context, req model.ReqRegister) dto.Res {
	if _, err := u.userRepository.GetByUserName(ctx, req.UserName); err == nil {
		return dto.Res{ResponseCode: "409", ResponseMessage: "Username already taken"}
	}
	user := model.User{
		Name:     req.Name,
		UserName: req.UserName,
		Password: req.Password,
	}
	if err := u.userRepository.CreateUser(ctx, user); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while creating user")
		return dto.Res{ResponseCode: "500", ResponseMessage: "Could not create user"}
	}
	return dto.Res{ResponseCode: "200", ResponseMessage: "Success"}
}
