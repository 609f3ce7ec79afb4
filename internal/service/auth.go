package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/ali-aqib/blog/internal/domain"
	"github.com/ali-aqib/blog/internal/repository"
)

// AuthService 负责注册、登录和会话令牌 (凭据存储)。
type AuthService struct {
	userRepo      repository.UserRepository
	sessionSecret []byte        // 会话签名密钥
	sessionTTL    time.Duration // 会话有效期
}

// NewAuthService 创建 AuthService 实例。
// sessionSecretKey 应从安全配置中获取，sessionTTLHours <= 0 时默认 30 天。
func NewAuthService(userRepo repository.UserRepository, sessionSecretKey string, sessionTTLHours int) (*AuthService, error) {
	if userRepo == nil {
		panic("UserRepository cannot be nil for AuthService")
	}
	if sessionSecretKey == "" {
		return nil, fmt.Errorf("session secret key cannot be empty")
	}
	if sessionTTLHours <= 0 {
		sessionTTLHours = 24 * 30
	}
	return &AuthService{
		userRepo:      userRepo,
		sessionSecret: []byte(sessionSecretKey),
		sessionTTL:    time.Duration(sessionTTLHours) * time.Hour,
	}, nil
}

// Register 处理用户注册。邮箱已被注册时返回 ErrDuplicateEmail，且不写入任何数据。
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)
	logCtx := logrus.WithFields(logrus.Fields{"email": email, "name": name})

	// 1. 基本验证 (表单层已做格式校验)
	if email == "" || name == "" || password == "" {
		return nil, ErrInvalidInput
	}

	// 2. 已注册的邮箱直接拒绝，避免无谓的哈希计算
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		logCtx.Warn("Registration rejected: email already registered")
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		logCtx.WithError(err).Error("Database error checking email during registration")
		return nil, ErrInternalServer
	}

	// 3. 哈希密码
	hashedPassword, err := hashPassword(password)
	if err != nil {
		logCtx.WithError(err).Error("Failed to hash password during registration")
		return nil, ErrInternalServer
	}

	// 4. 保存用户，并发注册同一邮箱时由仓库层的事务和唯一索引兜底
	user := &domain.User{
		Email:    email,
		Name:     name,
		Password: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.WithError(err).Warn("Registration failed: email already exists (repo error)")
			return nil, ErrDuplicateEmail
		}
		logCtx.WithError(err).Error("Database error during user creation")
		return nil, ErrInternalServer
	}

	logCtx.WithFields(logrus.Fields{"user_id": user.ID, "admin": user.IsAdmin()}).Info("User registered successfully")
	user.Password = "" // 清除密码哈希再返回
	return user, nil
}

// Authenticate 校验邮箱和密码。
// 用户不存在返回 ErrUserNotFound，密码错误返回 ErrWrongPassword。
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	email = normalizeEmail(email)
	logCtx := logrus.WithField("email", email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logCtx.Warn("Login attempt failed: user not found")
			return nil, ErrUserNotFound
		}
		logCtx.WithError(err).Error("Login attempt failed: error finding user")
		return nil, ErrInternalServer
	}
	if user == nil {
		logCtx.Warn("Login attempt failed: user not found (repo returned nil user without error)")
		return nil, ErrUserNotFound
	}

	if !checkPassword(password, user.Password) {
		logCtx.WithField("user_id", user.ID).Warn("Login attempt failed: invalid password")
		return nil, ErrWrongPassword
	}

	logCtx.WithField("user_id", user.ID).Info("User authenticated successfully")
	user.Password = ""
	return user, nil
}

// IssueSession 为用户签发会话令牌，写入 Cookie 后即建立登录态。
func (s *AuthService) IssueSession(userID uint) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     now.Add(s.sessionTTL).Unix(),
		"iat":     now.Unix(),
	})
	tokenString, err := token.SignedString(s.sessionSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return tokenString, nil
}

// SessionTTL 返回会话有效期，用于设置 Cookie 的过期时间。
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// ResolveSession 校验会话令牌并加载对应用户。
// 令牌无效、过期或用户已不存在时返回 ErrInvalidSession。
func (s *AuthService) ResolveSession(ctx context.Context, tokenStr string) (*domain.User, error) {
	userID, err := s.parseSession(tokenStr)
	if err != nil {
		logrus.WithError(err).Debug("Session token rejected")
		return nil, ErrInvalidSession
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidSession
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to load session user")
		return nil, ErrInternalServer
	}
	user.Password = ""
	return user, nil
}

// --- 私有辅助函数 ---

func (s *AuthService) parseSession(tokenStr string) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.sessionSecret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("session validation failed: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, errors.New("invalid session or claims type")
	}
	// JWT 数字默认为 float64
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok || userIDFloat <= 0 || userIDFloat != float64(uint(userIDFloat)) {
		return 0, fmt.Errorf("invalid user_id claim: %v", claims["user_id"])
	}
	return uint(userIDFloat), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// hashPassword 使用 bcrypt 对密码进行加盐哈希
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to generate hash from password: %w", err)
	}
	return string(bytes), nil
}

// checkPassword 用存储的盐重新计算哈希并比较
func checkPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
