package rest

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"medbook/internal/domain"
)

const (
	authorizationHeader = "Authorization"
	userIDCtx           = "user_id"
	userRoleCtx         = "user_role"
	doctorIDCtx         = "doctor_id"
)

func (h *Handler) loggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		path := c.Request.URL.Path
		method := c.Request.Method
		ip := c.ClientIP()
		userAgent := c.Request.UserAgent()

		logger := h.logger.With(
			zap.String("path", path),
			zap.String("method", method),
			zap.Int("status", status),
			zap.Duration("latency", latency),
			zap.String("ip", ip),
			zap.String("user-agent", userAgent),
		)

		if status >= 500 {
			logger.Error("server error")
		} else if status >= 400 {
			logger.Warn("client error")
		} else {
			logger.Info("request processed")
		}
	}
}

func (h *Handler) errorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			for _, err := range c.Errors {
				h.logger.Error("request error", zap.Error(err))
			}
		}
	}
}

func (h *Handler) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Origin, Accept, User-Agent, X-Requested-With, Cache-Control, DNT, Referer")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length, Authorization, Content-Type")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400") // 24 часа

		origin := c.Request.Header.Get("Origin")
		if origin != "" && c.Request.Header.Get("Authorization") != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(authorizationHeader)
		if header == "" {
			errorResponse(c, http.StatusUnauthorized, "пустой заголовок авторизации")
			c.Abort()
			return
		}

		headerParts := strings.Split(header, " ")
		if len(headerParts) != 2 || headerParts[0] != "Bearer" {
			errorResponse(c, http.StatusUnauthorized, "неверный формат заголовка авторизации")
			c.Abort()
			return
		}

		token := headerParts[1]
		userID, userRole, err := h.services.Auth.ParseToken(c.Request.Context(), token)
		if err != nil {
			errorResponse(c, http.StatusUnauthorized, err.Error())
			c.Abort()
			return
		}

		c.Set(userIDCtx, userID)
		c.Set(userRoleCtx, userRole)

		// У врача идентичность включает ID его профиля.
		if userRole == domain.UserRoleDoctor {
			if doctor, err := h.services.Doctor.GetByUserID(c.Request.Context(), userID); err == nil {
				c.Set(doctorIDCtx, doctor.ID)
			}
		}

		c.Next()
	}
}

func (h *Handler) adminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(userRoleCtx)
		if !exists {
			errorResponse(c, http.StatusUnauthorized, "пользователь не авторизован")
			c.Abort()
			return
		}

		role, ok := userRole.(domain.UserRole)
		if !ok || role != domain.UserRoleAdmin {
			forbiddenResponse(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

func (h *Handler) doctorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get(userRoleCtx)
		if !exists {
			errorResponse(c, http.StatusUnauthorized, "пользователь не авторизован")
			c.Abort()
			return
		}

		role, ok := userRole.(domain.UserRole)
		if !ok || role != domain.UserRoleDoctor {
			forbiddenResponse(c, "доступ запрещен, требуется роль врача")
			c.Abort()
			return
		}

		c.Next()
	}
}

func getUserID(c *gin.Context) (int64, error) {
	userID, exists := c.Get(userIDCtx)
	if !exists {
		return 0, errors.New("пользователь не авторизован")
	}

	id, ok := userID.(int64)
	if !ok {
		return 0, errors.New("некорректный ID пользователя")
	}

	return id, nil
}

func getUserRole(c *gin.Context) (domain.UserRole, error) {
	userRole, exists := c.Get(userRoleCtx)
	if !exists {
		return "", errors.New("пользователь не авторизован")
	}

	role, ok := userRole.(domain.UserRole)
	if !ok {
		return "", errors.New("некорректная роль пользователя")
	}

	return role, nil
}

// getIdentity собирает идентичность вызывающего из контекста запроса.
func getIdentity(c *gin.Context) (domain.Identity, error) {
	userID, err := getUserID(c)
	if err != nil {
		return domain.Identity{}, err
	}

	role, err := getUserRole(c)
	if err != nil {
		return domain.Identity{}, err
	}

	identity := domain.Identity{
		UserID: userID,
		Role:   role,
	}

	if doctorID, exists := c.Get(doctorIDCtx); exists {
		if id, ok := doctorID.(int64); ok {
			identity.DoctorID = &id
		}
	}

	return identity, nil
}
