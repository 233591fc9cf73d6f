package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mmdatafocus/autoservice_backend/config"
	"github.com/mmdatafocus/autoservice_backend/utils"
)

type User struct {
	ID         int       `gorm:"primary_key" json:"id"`
	BusinessId string    `gorm:"index" json:"business_id"`
	Username   string    `gorm:"size:100;not null;unique" json:"username" binding:"required"`
	Name       string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Email      *string   `gorm:"size:100;unique" json:"email"`
	Password   string    `gorm:"size:255;not null" json:"password"`
	IsActive   *bool     `gorm:"not null" json:"is_active"`
	Role       UserRole  `gorm:"type:enum('A', 'O', 'C');default:C" json:"role"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type LoginInfo struct {
	Token        string `json:"token"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	BusinessId   string `json:"business_id"`
	BusinessName string `json:"business_name"`
}

type NewUser struct {
	BusinessId string   `json:"business_id" binding:"required"`
	Username   string   `json:"username" binding:"required"`
	Name       string   `json:"name" binding:"required"`
	Email      string   `json:"email"`
	Password   string   `json:"password" binding:"required,min=8"`
	Role       UserRole `json:"role"`
}

/*
caches:
	User:$username
*/

func (user User) RemoveInstanceRedis() error {
	return config.RemoveRedisKey("User:" + user.Username)
}

func GetUserByUsername(ctx context.Context, username string) (*User, error) {
	var user User
	exists, err := config.GetRedisObject("User:"+username, &user)
	if err != nil {
		return nil, err
	}
	if exists {
		return &user, nil
	}

	db := config.GetDB()
	if db == nil {
		return nil, errors.New("db is nil")
	}
	if err := db.WithContext(ctx).Model(&User{}).Where("username = ?", username).Take(&user).Error; err != nil {
		return nil, utils.ErrorRecordNotFound
	}
	if err := config.SetRedisObject("User:"+username, &user, 0); err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(ctx context.Context, input *NewUser) (*User, error) {
	if err := utils.ValidateResourceId[Business](ctx, "", input.BusinessId); err != nil {
		return nil, errors.New("business not found")
	}
	if err := utils.ValidateUnique[User](ctx, "", "username", input.Username, 0); err != nil {
		return nil, err
	}
	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return nil, errors.New("invalid email")
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = UserRoleCommon
	}

	user := User{
		BusinessId: input.BusinessId,
		Username:   strings.TrimSpace(input.Username),
		Name:       input.Name,
		Email:      utils.NilIfEmpty(input.Email),
		Password:   string(hashed),
		IsActive:   utils.NewTrue(),
		Role:       role,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func Login(ctx context.Context, username string, password string) (*LoginInfo, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}

	user, err := GetUserByUsername(ctx, username)
	if err != nil {
		return nil, errors.New("invalid credentials")
	}
	if !utils.DereferencePtr(user.IsActive) {
		return nil, errors.New("user is inactive")
	}
	if err := utils.ComparePassword(user.Password, password); err != nil {
		return nil, errors.New("invalid credentials")
	}

	token, err := utils.JwtGenerate(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	if err := config.SetRedisValue("Token:"+token, user.Username, utils.TokenLifespan()); err != nil {
		return nil, err
	}

	info := &LoginInfo{
		Token:      token,
		Name:       user.Name,
		Role:       string(user.Role),
		BusinessId: user.BusinessId,
	}
	if user.BusinessId != "" {
		if business, err := GetBusinessById(ctx, user.BusinessId); err == nil {
			info.BusinessName = business.Name
		}
	}
	return info, nil
}
