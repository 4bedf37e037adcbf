package tokens

import (
	"testing"
	"time"

	"github.com/fsdevblog/gumball-machine/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
)

type BadgeTokenTestSuite struct {
	suite.Suite
	key []byte
}

func TestBadgeTokenSuite(t *testing.T) {
	suite.Run(t, new(BadgeTokenTestSuite))
}

func (s *BadgeTokenTestSuite) SetupTest() {
	s.key = []byte("secret")
}

func (s *BadgeTokenTestSuite) TestRoundTrip() {
	badge := Badge{Resource: domain.ResourceID("resource_staff"), LocalID: 3, Holder: "Alice"}

	token, err := GenerateBadgeJWT(badge, time.Hour, s.key)
	s.Require().NoError(err)

	claims, validateErr := ValidateBadgeJWT(token, s.key)
	s.Require().NoError(validateErr)
	s.Equal(badge.Resource, claims.Resource)
	s.Equal(badge.LocalID, claims.LocalID)
	s.Equal("Alice", claims.Subject)
}

func (s *BadgeTokenTestSuite) TestValidate_Errors() {
	forever, err := GenerateBadgeJWT(Badge{Resource: "resource_admin"}, 0, s.key)
	s.Require().NoError(err)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, BadgeClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))},
		Resource:         "resource_admin",
	}).SignedString(s.key)
	s.Require().NoError(err)

	noResource, err := jwt.NewWithClaims(jwt.SigningMethodHS256, BadgeClaims{}).SignedString(s.key)
	s.Require().NoError(err)

	cases := []struct {
		name    string
		token   string
		key     []byte
		wantErr bool
		isErr   error
	}{
		{name: "no expiry", token: forever, key: s.key},
		{name: "wrong key", token: forever, key: []byte("other"), wantErr: true},
		{name: "garbage", token: "not.a.token", key: s.key, wantErr: true},
		{name: "expired", token: expired, key: s.key, wantErr: true, isErr: ErrTokenExpired},
		{name: "no resource", token: noResource, key: s.key, wantErr: true, isErr: ErrInvalidClaims},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			_, validateErr := ValidateBadgeJWT(t.token, t.key)
			if !t.wantErr {
				s.Require().NoError(validateErr)
				return
			}
			s.Require().Error(validateErr)
			if t.isErr != nil {
				s.Require().ErrorIs(validateErr, t.isErr)
			}
		})
	}
}

func (s *BadgeTokenTestSuite) TestGenerate_EmptyResource() {
	_, err := GenerateBadgeJWT(Badge{}, time.Hour, s.key)
	s.Require().ErrorIs(err, ErrInvalidClaims)
}
