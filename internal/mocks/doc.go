// Package mocks provides function-field mocks shared by handler and
// middleware tests.
//
// Each mock exposes one Fn field per interface method. A nil Fn falls back to
// simple default values, so tests only set the behaviour they care about:
//
//	jwt := &mocks.MockJWTService{
//	    ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
//	        return &auth.Claims{ProfileID: profileID}, nil
//	    },
//	}
package mocks
