package frontend

import (
	"context"

	"github.com/preciouswiki/precious/auth"
)

// Register validates and stores a new account. It does not authenticate;
// callers chain to Authenticate to establish the session.
// The returned error is a *ValidationError, store.ErrDuplicateAccount or a
// wrapped store.ErrStorage.
func (s *Service) Register(ctx context.Context, email, fullName, password, confirm string) error {
	if v := ValidateRegistration(email, fullName, password, confirm); v != nil {
		return v
	}
	digest, err := s.digester.Digest(email, password)
	if err != nil {
		return err
	}
	if err := s.store.Insert(ctx, email, fullName, digest); err != nil {
		return err
	}
	s.logger.Info("account registered", "email", email)
	return nil
}

// Authenticate verifies the email/password pair and returns the caller's
// identity. ErrAuthentication on mismatch; the caller's existing session
// cookie is left alone on failure.
func (s *Service) Authenticate(ctx context.Context, email, password string) (auth.Identity, error) {
	acct, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return auth.Identity{}, err
	}
	if acct == nil || !s.digester.Verify(email, password, acct.PasswordDigest) {
		return auth.Identity{}, ErrAuthentication
	}
	return auth.Identity{Email: acct.Email, FullName: acct.FullName}, nil
}

// UpdateAccount re-validates the mutable fields, rewrites the stored record
// and returns the refreshed identity so the caller can re-issue the session
// cookie with the new full name.
func (s *Service) UpdateAccount(ctx context.Context, email, fullName, password, confirm string) (auth.Identity, error) {
	if v := ValidateAccountUpdate(fullName, password, confirm); v != nil {
		return auth.Identity{}, v
	}
	digest, err := s.digester.Digest(email, password)
	if err != nil {
		return auth.Identity{}, err
	}
	if err := s.store.Update(ctx, email, fullName, digest); err != nil {
		return auth.Identity{}, err
	}
	s.logger.Info("account updated", "email", email)
	return auth.Identity{Email: email, FullName: fullName}, nil
}

// DeleteAccount removes the account. The caller clears the session cookie
// on success.
func (s *Service) DeleteAccount(ctx context.Context, email string) error {
	if err := s.store.Delete(ctx, email); err != nil {
		return err
	}
	s.logger.Info("account deleted", "email", email)
	return nil
}
