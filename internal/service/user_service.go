package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"satay/internal/domain"
	"satay/pkg/logger"
)

type UserService struct {
	repo   domain.UserRepository
	logger logger.Logger
}

func NewUserService(repo domain.UserRepository, logger logger.Logger) domain.UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

func (s *UserService) Register(fullName, email, password, role string, phone, address *string) (*domain.User, error) {
	existingUser, err := s.repo.FindByEmail(email)
	if err != nil {
		s.logger.Error("E-posta adresi kontrolü sırasında hata oluştu", map[string]interface{}{"email": email, "error": err.Error()})
		return nil, fmt.Errorf("kayıt yapılamadı: %w", err)
	}

	if existingUser != nil {
		return nil, domain.ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Şifre hashlenemedi", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("kayıt yapılamadı: %w", err)
	}

	if role == "" {
		role = domain.UserRoleMember
	}

	user := &domain.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		PhoneNumber:  phone,
		Address:      address,
	}

	if err := s.repo.Create(user); err != nil {
		s.logger.Error("Kullanıcı oluşturma sırasında hata oluştu", map[string]interface{}{"email": email, "error": err.Error()})
		return nil, fmt.Errorf("kayıt yapılamadı: %w", err)
	}

	return user, nil
}

// Authenticate bilinmeyen e-posta ile yanlış şifreyi ayırt etmez;
// her ikisinde de aynı hata döner.
func (s *UserService) Authenticate(email, password string) (*domain.User, error) {
	user, err := s.repo.FindByEmail(email)
	if err != nil {
		s.logger.Error("Kimlik doğrulama sırasında hata oluştu", map[string]interface{}{"email": email, "error": err.Error()})
		return nil, fmt.Errorf("giriş yapılamadı: %w", err)
	}

	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

func (s *UserService) GetUserByID(id int64) (*domain.User, error) {
	user, err := s.repo.FindByID(id)
	if err != nil {
		s.logger.Error("Kullanıcı ID'ye göre bulunamadı", map[string]interface{}{"id": id, "error": err.Error()})
		return nil, fmt.Errorf("kullanıcı bulunamadı: %w", err)
	}

	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	return user, nil
}

func (s *UserService) UpdateProfile(id int64, fullName string, phone, address *string) error {
	if err := s.repo.UpdateProfile(id, fullName, phone, address); err != nil {
		s.logger.Error("Profil güncelleme sırasında hata oluştu", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("profil güncellenemedi: %w", err)
	}

	return nil
}

// ChangePassword eski şifreyi doğrulamaz; o kontrol gerekiyorsa çağıran
// tarafta Authenticate ile yapılır.
func (s *UserService) ChangePassword(id int64, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Şifre hashlenemedi", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("şifre değiştirilemedi: %w", err)
	}

	if err := s.repo.UpdatePassword(id, string(hash)); err != nil {
		s.logger.Error("Şifre değiştirme sırasında hata oluştu", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("şifre değiştirilemedi: %w", err)
	}

	return nil
}

func (s *UserService) ListUsers(role string) ([]*domain.User, error) {
	users, err := s.repo.FindAll(role)
	if err != nil {
		s.logger.Error("Kullanıcılar listelenemedi", map[string]interface{}{"role": role, "error": err.Error()})
		return nil, fmt.Errorf("kullanıcılar listelenemedi: %w", err)
	}

	return users, nil
}

func (s *UserService) DeleteUser(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("Kullanıcı silme sırasında hata oluştu", map[string]interface{}{"id": id, "error": err.Error()})
		return fmt.Errorf("kullanıcı silinemedi: %w", err)
	}

	return nil
}
