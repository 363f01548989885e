package helpers

import (
	"net/http"

	"code.cloudfoundry.org/lager/v3"
	"golang.org/x/crypto/bcrypt"

	"github.com/cloudsql-replica-autoscaler/autoscaler/models"
)

// bcrypt only looks at the first 72 bytes.
const maxBcryptInput = 72

type BasicAuthenticationMiddleware struct {
	usernameHash []byte
	passwordHash []byte
	logger       lager.Logger
}

// Middleware lets every request through when no credentials are configured.
func (bam *BasicAuthenticationMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if bam.usernameHash == nil && bam.passwordHash == nil {
			next.ServeHTTP(w, r)
			return
		}

		username, password, authOK := r.BasicAuth()
		if !authOK || bcrypt.CompareHashAndPassword(bam.usernameHash, []byte(username)) != nil || bcrypt.CompareHashAndPassword(bam.passwordHash, []byte(password)) != nil {
			bam.logger.Debug("basic-authentication-failed", lager.Data{"path": r.URL.Path})
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func CreateBasicAuthMiddleware(logger lager.Logger, ba models.BasicAuth) (*BasicAuthenticationMiddleware, error) {
	if ba.IsEmpty() {
		return &BasicAuthenticationMiddleware{logger: logger}, nil
	}

	usernameHash, err := hashBytes(logger, "username", ba.UsernameHash, ba.Username)
	if err != nil {
		return nil, err
	}
	passwordHash, err := hashBytes(logger, "password", ba.PasswordHash, ba.Password)
	if err != nil {
		return nil, err
	}

	return &BasicAuthenticationMiddleware{
		usernameHash: usernameHash,
		passwordHash: passwordHash,
		logger:       logger,
	}, nil
}

func hashBytes(logger lager.Logger, field string, hash string, clearText string) ([]byte, error) {
	if hash != "" {
		return []byte(hash), nil
	}
	if len(clearText) > maxBcryptInput {
		logger.Error("warning-configured-"+field+"-too-long-using-only-first-72-characters", bcrypt.ErrPasswordTooLong, lager.Data{field + "-length": len(clearText)})
		clearText = clearText[:maxBcryptInput]
	}
	// MinCost: the config already holds the value in clear text.
	hashed, err := bcrypt.GenerateFromPassword([]byte(clearText), bcrypt.MinCost)
	if err != nil {
		logger.Error("failed-new-server-"+field, err)
		return nil, err
	}
	return hashed, nil
}
