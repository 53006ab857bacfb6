package httpadapter

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"testing"

	"npcmind/internal/app/auth"
	"npcmind/internal/app/ports"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type fakeCredentialStore struct {
	cred ports.PlayerCredentialRecord
}

func (f fakeCredentialStore) Create(context.Context, ports.PlayerCredentialRecord) error {
	return nil
}

func (f fakeCredentialStore) GetByAddress(_ context.Context, playerAddress string) (ports.PlayerCredentialRecord, error) {
	if f.cred.PlayerAddress != playerAddress {
		return ports.PlayerCredentialRecord{}, ports.ErrNotFound
	}
	return f.cred, nil
}

func hashForTest(salt []byte, key string) []byte {
	b := append(append([]byte{}, salt...), key...)
	sum := sha256.Sum256(b)
	return sum[:]
}

func TestRequireAuthenticatedPlayer_FromHeaders(t *testing.T) {
	salt := []byte("salt")
	key := "k1"
	h := Handler{
		AuthUC: auth.VerifyUseCase{Credentials: fakeCredentialStore{
			cred: ports.PlayerCredentialRecord{
				PlayerAddress: "0xabc",
				KeySalt:       salt,
				KeyHash:       hashForTest(salt, key),
				Status:        auth.CredentialStatusActive,
			},
		}},
	}
	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(playerAddressHeader, "0xabc")
	ctx.Request.Header.Set(playerKeyHeader, key)

	playerAddress, err := h.requireAuthenticatedPlayer(context.Background(), ctx)
	if err != nil {
		t.Fatalf("requireAuthenticatedPlayer error: %v", err)
	}
	if playerAddress != "0xabc" {
		t.Fatalf("unexpected player address: %q", playerAddress)
	}
}

func TestRequireAuthenticatedPlayer_MissingHeaders(t *testing.T) {
	h := Handler{}
	ctx := &app.RequestContext{}

	if _, err := h.requireAuthenticatedPlayer(context.Background(), ctx); err != ErrMissingPlayerCredentials {
		t.Fatalf("expected ErrMissingPlayerCredentials, got %v", err)
	}

	ctx.Request.Header.Set(playerAddressHeader, "0xabc")
	if _, err := h.requireAuthenticatedPlayer(context.Background(), ctx); err != ErrMissingPlayerKeyHeader {
		t.Fatalf("expected ErrMissingPlayerKeyHeader, got %v", err)
	}
}

func TestRequireAuthenticatedPlayer_InvalidCredentials(t *testing.T) {
	h := Handler{
		AuthUC: auth.VerifyUseCase{Credentials: fakeCredentialStore{}},
	}
	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(playerAddressHeader, "0xabc")
	ctx.Request.Header.Set(playerKeyHeader, "wrong")

	if _, err := h.requireAuthenticatedPlayer(context.Background(), ctx); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"unknown entity", ports.ErrUnknownEntity, consts.StatusNotFound},
		{"not found", ports.ErrNotFound, consts.StatusNotFound},
		{"conflict", ports.ErrConflict, consts.StatusConflict},
		{"upstream", ports.ErrUpstreamFailure, consts.StatusBadGateway},
		{"invalid credentials", auth.ErrInvalidCredentials, consts.StatusUnauthorized},
		{"unexpected", errors.New("boom"), consts.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := &app.RequestContext{}
			writeError(ctx, tc.err)
			if got := ctx.Response.StatusCode(); got != tc.want {
				t.Fatalf("status = %d, want %d", got, tc.want)
			}

			var body struct {
				Error struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if body.Error.Code == "" {
				t.Fatal("error body must carry a code")
			}
		})
	}
}

func TestDecodeJSONEmptyBody(t *testing.T) {
	ctx := &app.RequestContext{}
	var out taskRequest
	if err := decodeJSON(ctx, &out); err != nil {
		t.Fatalf("empty body must decode to zero value: %v", err)
	}
	if out.Type != "" {
		t.Fatalf("unexpected decoded value: %+v", out)
	}
}
