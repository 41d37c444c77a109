package auth

import (
	"github.com/jhoicas/GemeloDigital-api/internal/domain"
	"github.com/jhoicas/GemeloDigital-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// RoleOperator rol único del operador de tienda.
const RoleOperator = "operador"

// JWTConfig configuración de emisión de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase autentica al operador de la tienda. Las credenciales viven en la
// configuración (un solo operador); no hay tabla de usuarios.
type AuthUseCase struct {
	username     string
	passwordHash string // bcrypt
	jwtCfg       JWTConfig
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(username, passwordHash string, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{username: username, passwordHash: passwordHash, jwtCfg: jwtCfg}
}

// Login valida usuario y contraseña contra el hash bcrypt configurado y devuelve
// un token JWT. ErrUnauthorized ante cualquier discrepancia.
func (uc *AuthUseCase) Login(username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidInput
	}
	if username != uc.username || uc.passwordHash == "" {
		return "", domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(uc.passwordHash), []byte(password)); err != nil {
		return "", domain.ErrUnauthorized
	}
	return jwt.Generate(uc.jwtCfg.Secret, username, RoleOperator, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
}
