package security

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/thejas-1999/Assets-Management/internal/repository"
	"github.com/thejas-1999/Assets-Management/pkg/models"
)

var jwtSecret []byte

func init() {
	secret := os.Getenv("JWT_SECRET")

	if secret == "" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Unable to load .env: %v", err)
		}
		secret = os.Getenv("JWT_SECRET")
	}

	if secret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtSecret = []byte(secret)
}

func AuthenticateUser(email, password string, repo *repository.Repository) (*models.User, error) {
	var user models.User

	query := repo.GoquDBWrapper.
		Select("id", "name", "email", "password_hash", "designation", "phone", "role", "created_at").
		From("users").
		Where(goqu.Ex{"email": email})

	if _, err := query.Executor().ScanStruct(&user); err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, err
	}

	return &user, nil
}

func GenerateJWT(userID string, role string, email string) (string, error) {
	claims := jwt.MapClaims{
		"userID": userID,
		"role":   role,
		"email":  email,
		"exp":    time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// CurrentUserID reads the authenticated user's ID set by JWTMiddleware.
func CurrentUserID(c *gin.Context) (int, error) {
	raw, exists := c.Get("userID")
	if !exists {
		return 0, fmt.Errorf("no authenticated user in context")
	}

	str, ok := raw.(string)
	if !ok {
		return 0, fmt.Errorf("userID is not a string")
	}

	userID, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("userID is not numeric: %w", err)
	}

	return userID, nil
}

// CurrentRole reads the authenticated user's role set by JWTMiddleware.
func CurrentRole(c *gin.Context) string {
	raw, exists := c.Get("role")
	if !exists {
		return ""
	}

	role, _ := raw.(string)
	return role
}

func parseToken(tokenString string) (*jwt.Token, error) {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return jwtSecret, nil
	})
}
