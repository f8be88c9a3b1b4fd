package models

import (
	"fmt"
	"slices"

	"github.com/example/shopadmin/pkg/admin"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID           int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string   `gorm:"type:varchar(100);not null" json:"nom"`
	Email        string   `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Phone        string   `gorm:"type:varchar(20)" json:"telephone"`
	Address      string   `gorm:"type:varchar(255)" json:"adresse"`
	Roles        []Role   `gorm:"type:text;serializer:json" json:"roles"`
	Provider     Provider `gorm:"type:varchar(20)" json:"provider"`
	ProviderID   string   `gorm:"type:varchar(100)" json:"provider_id"`
	Avatar       string   `gorm:"type:varchar(255)" json:"avatar"`
	PasswordHash string   `gorm:"type:varchar(100)" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserForm is sent as the request body; an empty password is left out so the
// stored one is kept. Resubmitting the current password keeps its hash.
type UserForm struct {
	Name       string   `json:"nom" validate:"required"`
	Email      string   `json:"email" validate:"required,email"`
	Phone      string   `json:"telephone" validate:"required"`
	Address    string   `json:"adresse" validate:"required"`
	Roles      []Role   `json:"roles" validate:"dive,enum"`
	Password   string   `json:"password,omitempty"`
	Provider   Provider `json:"provider" validate:"omitempty,enum"`
	ProviderID string   `json:"provider_id"`
	Avatar     string   `json:"avatar"`
}

var Users = &admin.Schema[User, UserForm]{
	Resource: "users",
	Singular: "user",
	Noun:     admin.Noun{Singular: "utilisateur", Plural: "utilisateurs"},
	ID:       func(u User) int64 { return u.ID },
	WithID:   func(u User, id int64) User { u.ID = id; return u },
	Search:   func(u User) []string { return []string{u.Name, u.Email} },
	Blank: func() UserForm {
		return UserForm{Roles: []Role{RoleClient}, Provider: ProviderEmail, Avatar: PlaceholderAvatar}
	},
	Fill: func(u User) UserForm {
		avatar := u.Avatar
		if avatar == "" {
			avatar = PlaceholderAvatar
		}
		return UserForm{
			Name:       u.Name,
			Email:      u.Email,
			Phone:      u.Phone,
			Address:    u.Address,
			Roles:      slices.Clone(u.Roles),
			Provider:   u.Provider,
			ProviderID: u.ProviderID,
			Avatar:     avatar,
		}
	},
	Merge: mergeUser,
}

func mergeUser(u User, f UserForm) (User, error) {
	u.Name = f.Name
	u.Email = f.Email
	u.Phone = f.Phone
	u.Address = f.Address
	u.Roles = slices.Clone(f.Roles)
	u.Provider = f.Provider
	u.ProviderID = f.ProviderID
	u.Avatar = f.Avatar
	if f.Password != "" && !u.CheckPassword(f.Password) {
		hash, err := bcrypt.GenerateFromPassword([]byte(f.Password), bcrypt.DefaultCost)
		if err != nil {
			return u, fmt.Errorf("failed to hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}
	return u, nil
}

// CheckPassword reports whether password matches the stored hash.
func (u User) CheckPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
