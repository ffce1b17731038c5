package consts

const (
	// TokenBlockKey 登出后被拉黑的 token 签名
	TokenBlockKey = "auth:token:block:"
)
