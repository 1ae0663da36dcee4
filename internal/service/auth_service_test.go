package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"heart-matching-backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	utils.InitJWT("test-secret", time.Hour)
	env := newTestEnv(t, nil)
	env.registerFacility(t, validFacilityInput("押上訪問看護ステーション"))

	resp, err := env.auth.Login(context.Background(), " 押上訪問看護ステーション ")
	require.NoError(t, err)
	assert.Equal(t, "押上訪問看護ステーション", resp.Facility.Name)

	claims, err := utils.ValidateSessionToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "押上訪問看護ステーション", claims.FacilityName)
	assert.Contains(t, env.audit.actions(), "facility_login")
}

func TestLogin_Rejects(t *testing.T) {
	utils.InitJWT("test-secret", time.Hour)
	env := newTestEnv(t, nil)

	_, err := env.auth.Login(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyFacilityName)

	_, err = env.auth.Login(context.Background(), "未登録の施設")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegister_IssuesSession(t *testing.T) {
	utils.InitJWT("test-secret", time.Hour)
	env := newTestEnv(t, nil)

	resp, err := env.auth.Register(context.Background(), validFacilityInput("新規クリニック"))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "新規クリニック", resp.Facility.Name)

	_, err = env.auth.Register(context.Background(), validFacilityInput("新規クリニック"))
	assert.ErrorIs(t, err, ErrFacilityNameTaken)

	_, err = env.auth.Register(context.Background(), validFacilityInput(""))
	var verrs ValidationErrors
	assert.True(t, errors.As(err, &verrs))
}
