package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"

	"social-dashboard/domain/dto"
	"social-dashboard/domain/model"
	"social-dashboard/domain/repository"
	"social-dashboard/infrastructure/configuration"
)

// Auth validates the Bearer token and resolves the user, storing user_id and
// user_name on the gin context for handlers.
func Auth(userRepository repository.IUser) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		res := dto.Res{ResponseCode: "401", ResponseMessage: "Unauthorized"}

		authorization := ctx.Request.Header.Get("Authorization")
		if authorization == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, res)
			return
		}
		auth := strings.Split(authorization, "Bearer ")
		if len(auth) != 2 {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, res)
			return
		}

		userClaims, token, err := getClaim(auth[1], configuration.C.App.SecretKey)
		if err != nil || !token.Valid {
			res.ResponseMessage = describeTokenError(err)
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, res)
			return
		}

		user, err := userRepository.GetByUserName(ctx.Request.Context(), userClaims.UserName)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, res)
			return
		}
		ctx.Set("user_id", user.ID)
		ctx.Set("user_name", user.UserName)
		ctx.Next()
	}
}

func describeTokenError(err error) string {
	var ve *jwt.ValidationError
	if errors.As(err, &ve) {
		if ve.Errors&jwt.ValidationErrorMalformed != 0 {
			return "That's not even a token"
		}
		if ve.Errors&(jwt.ValidationErrorExpired|jwt.ValidationErrorNotValidYet) != 0 {
			return "Timing is everything"
		}
		return fmt.Sprintf("Couldn't handle this token:%v", err)
	}
	return "Unauthorized"
}

func getClaim(tokenString, secretKey string) (model.UserClaims, *jwt.Token, error) {
	var userClaims model.UserClaims
	token, err := jwt.ParseWithClaims(
		tokenString,
		&userClaims,
		func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		},
	)
	return userClaims, token, err
}
