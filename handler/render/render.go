package render

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strconv"

	"dsc/core"

	"github.com/sirupsen/logrus"
)

// H json object
type H map[string]interface{}

// ResponseErrorMessageAsHint expose the message of uncoded errors as hint
var ResponseErrorMessageAsHint bool

func init() {
	v := os.Getenv("RESPONSE_ERROR_MESSAGE_AS_HINT")
	ResponseErrorMessageAsHint, _ = strconv.ParseBool(v)
}

type dataResponse struct {
	Data interface{} `json:"data"`
}

type errorResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Kind string `json:"kind,omitempty"`
	Hint string `json:"hint,omitempty"`
}

func write(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Errorln("render json failed")
	}
}

// JSON render v wrapped in {"data": v}
func JSON(w http.ResponseWriter, v interface{}) {
	write(w, http.StatusOK, dataResponse{Data: v})
}

// StatusOf http status of an error kind
func StatusOf(kind core.ErrorKind) int {
	switch kind {
	case core.KindValidation:
		return http.StatusBadRequest
	case core.KindTransfer:
		return http.StatusPaymentRequired
	case core.KindSolvency:
		return http.StatusUnprocessableEntity
	case core.KindLiquidation:
		return http.StatusConflict
	case core.KindGuard:
		return http.StatusTooManyRequests
	case core.KindOracle:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Error write err with the status of its kind
func Error(w http.ResponseWriter, err error) {
	var code core.ErrorCode
	if !errors.As(err, &code) {
		resp := errorResponse{Code: int(core.ErrUnknown), Msg: core.ErrUnknown.Error()}
		if ResponseErrorMessageAsHint {
			resp.Hint = err.Error()
		}

		write(w, http.StatusInternalServerError, resp)
		return
	}

	write(w, StatusOf(code.Kind()), errorResponse{
		Code: int(code),
		Msg:  err.Error(),
		Kind: code.Kind().String(),
	})
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	write(w, http.StatusBadRequest, errorResponse{Code: -1, Msg: err.Error()})
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	write(w, http.StatusNotFound, errorResponse{Code: -1, Msg: err.Error()})
}
