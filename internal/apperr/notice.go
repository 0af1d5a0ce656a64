package apperr

// Severity values match the notification surface's levels.
const (
	SeverityInfo    = "info"
	SeveritySuccess = "success"
	SeverityWarning = "warning"
	SeverityDanger  = "danger"
)

type Notice struct {
	Message  string
	Severity string
}

// gatewayNotices holds the one user-facing notice for each kind the gateway
// can produce.
var gatewayNotices = map[Kind]Notice{
	KindUnauthenticated: {"Your session has expired, please log in again", SeverityWarning},
	KindForbidden:       {"You do not have permission to access this", SeverityDanger},
	KindNotFound:        {"The requested resource does not exist", SeverityWarning},
	KindServerError:     {"Server error, please try again later", SeverityDanger},
	KindTimeout:         {"Request timed out, please check your connection", SeverityWarning},
	KindUnknown:         {"Request failed, please try again later", SeverityDanger},
}

// GatewayKinds lists every kind the gateway classifies failures into.
var GatewayKinds = []Kind{
	KindUnauthenticated,
	KindForbidden,
	KindNotFound,
	KindServerError,
	KindTimeout,
	KindUnknown,
}

// NoticeFor returns the notice for a gateway failure kind. Kinds the gateway
// never produces fall back to the Unknown notice.
func NoticeFor(kind Kind) Notice {
	if n, ok := gatewayNotices[kind]; ok {
		return n
	}
	return gatewayNotices[KindUnknown]
}
