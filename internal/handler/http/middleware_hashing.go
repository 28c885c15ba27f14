package http

import (
	"bytes"
	"crypto/hmac"
	"io"
	"net/http"

	"github.com/MKhiriev/go-contact-sync/internal/logger"
	"github.com/MKhiriev/go-contact-sync/internal/utils"
)

// hashHeader carries the hex HMAC-SHA256 of the request body.
const hashHeader = "HashSHA256"

// verifyHash rejects requests whose body does not match the HashSHA256
// header. It is a no-op when no hash key is configured.
func (h *Handler) verifyHash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.signer.Enabled() {
			next.ServeHTTP(w, r)
			return
		}
		log := logger.FromRequest(r)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Str("func", "*Handler.verifyHash").Msg("failed to read request body")
			utils.WriteError(w, http.StatusBadRequest, "failed to read request body", "")
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		got := r.Header.Get(hashHeader)
		want := h.signer.Sign(body)
		if !hmac.Equal([]byte(got), []byte(want)) {
			log.Error().Str("func", "*Handler.verifyHash").
				Str("hash from request", got).
				Msg("hashes are not equal")
			utils.WriteError(w, http.StatusBadRequest, ErrSignatureMismatch.Error(), "")
			return
		}

		log.Debug().Str("func", "*Handler.verifyHash").Msg("hashes are equal")
		next.ServeHTTP(w, r)
	})
}
