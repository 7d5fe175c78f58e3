package handler

import (
	"net/http"

	"github.com/atelier-dev/atelier/internal/utils"
)

// UploadSignature hands an authenticated admin a short-lived signature for
// a direct upload to the media CDN. The API never touches file bytes.
func (h *Handler) UploadSignature(w http.ResponseWriter, r *http.Request) {
	utils.WriteData(w, http.StatusOK, h.signer.Sign())
}
