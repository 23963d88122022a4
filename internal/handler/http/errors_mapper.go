package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-bank-cards/internal/app"
	"github.com/MKhiriev/go-bank-cards/internal/logger"
	"github.com/MKhiriev/go-bank-cards/internal/service"
	"github.com/MKhiriev/go-bank-cards/internal/utils"
)

type errorReply struct {
	status  int
	message string
}

var errorStatusMap = map[error]errorReply{
	ErrInvalidBody:           {http.StatusBadRequest, app.MsgInvalidBody},
	ErrInvalidPathParameter:  {http.StatusBadRequest, app.MsgInvalidBody},
	ErrInvalidQueryParameter: {http.StatusBadRequest, app.MsgInvalidBody},

	service.ErrInvalidCredentials: {http.StatusBadRequest, app.MsgInvalidLogin},
	service.ErrLoginTooLong:       {http.StatusBadRequest, app.MsgLoginTooLong},
	service.ErrPasswordTooLong:    {http.StatusBadRequest, app.MsgPasswordLong},
	service.ErrLoginAlreadyExists: {http.StatusConflict, app.MsgLoginExists},
	service.ErrUserNotFound:       {http.StatusNotFound, app.MsgUserNotFound},
	service.ErrWrongPassword:      {http.StatusUnauthorized, app.MsgWrongPassword},
	service.ErrTooManyAttempts:    {http.StatusTooManyRequests, app.MsgTooManyLogins},
	service.ErrInvalidToken:       {http.StatusUnauthorized, app.MsgUnauthorized},

	service.ErrCardNotFound:        {http.StatusNotFound, app.MsgCardNotFound},
	service.ErrNotCardOwner:        {http.StatusForbidden, app.MsgAccessDenied},
	service.ErrNegativeAmount:      {http.StatusBadRequest, app.MsgNegativeAmount},
	service.ErrInvalidAction:       {http.StatusBadRequest, app.MsgInvalidAction},
	service.ErrCardNotAvailable:    {http.StatusForbidden, app.MsgCardNotAvailable},
	service.ErrBalanceTooHigh:      {http.StatusForbidden, app.MsgBalanceTooHigh},
	service.ErrNotEnoughBalance:    {http.StatusForbidden, app.MsgNotEnoughBalance},
	service.ErrSameCard:            {http.StatusBadRequest, app.MsgSameCard},
	service.ErrInvalidStatus:       {http.StatusBadRequest, app.MsgInvalidStatus},
	service.ErrInvalidMonths:       {http.StatusBadRequest, app.MsgInvalidMonths},
	service.ErrInvalidFilter:       {http.StatusBadRequest, app.MsgInvalidFilter},
	service.ErrStatusRequestExists: {http.StatusConflict, app.MsgStatusRequestExists},
}

// replyFromError finds the status and message registered for err.
// Unknown errors become 500 "Internal error".
func replyFromError(err error) errorReply {
	for target, reply := range errorStatusMap {
		if errors.Is(err, target) {
			return reply
		}
	}
	return errorReply{http.StatusInternalServerError, app.MsgInternalError}
}

// writeError logs err and renders the JSON error body matching it.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	reply := replyFromError(err)

	log := logger.FromRequest(r)
	if reply.status >= http.StatusInternalServerError {
		log.Err(err).Int("status", reply.status).Msg("request failed")
	} else {
		log.Warn().Err(err).Int("status", reply.status).Msg("request rejected")
	}

	utils.WriteError(w, reply.status, reply.message)
}
