package identity

// Flow is the sign-in page an error is reported on.
type Flow int

const (
	FlowLogin Flow = iota
	FlowSignup
	FlowReset
)

// Code is a provider error code. Local password sign-in reports the same
// codes so every flow shares one message table.
type Code string

const (
	CodeUserNotFound        Code = "auth/user-not-found"
	CodeWrongPassword       Code = "auth/wrong-password"
	CodeInvalidEmail        Code = "auth/invalid-email"
	CodeUserDisabled        Code = "auth/user-disabled"
	CodeTooManyRequests     Code = "auth/too-many-requests"
	CodeEmailInUse          Code = "auth/email-already-in-use"
	CodeWeakPassword        Code = "auth/weak-password"
	CodeOperationNotAllowed Code = "auth/operation-not-allowed"
)

var messages = map[Flow]map[Code]string{
	FlowLogin: {
		CodeUserNotFound:    "Usuário não encontrado. Verifique seu e-mail ou cadastre-se.",
		CodeWrongPassword:   "Senha incorreta. Tente novamente.",
		CodeInvalidEmail:    "E-mail inválido. Verifique o formato do e-mail.",
		CodeUserDisabled:    "Este usuário foi desativado. Entre em contato com o administrador.",
		CodeTooManyRequests: "Muitas tentativas de login. Tente novamente mais tarde.",
	},
	FlowSignup: {
		CodeEmailInUse:          "Este e-mail já está em uso. Tente fazer login ou use outro e-mail.",
		CodeInvalidEmail:        "E-mail inválido. Verifique o formato do e-mail.",
		CodeWeakPassword:        "Senha fraca. Use uma senha mais forte.",
		CodeOperationNotAllowed: "Cadastro com e-mail e senha não está habilitado. Entre em contato com o administrador.",
	},
	FlowReset: {
		CodeInvalidEmail: "E-mail inválido. Verifique o formato do e-mail.",
		CodeUserNotFound: "Não há usuário registrado com este e-mail.",
	},
}

var fallbacks = map[Flow]string{
	FlowLogin:  "Ocorreu um erro ao fazer login. Tente novamente.",
	FlowSignup: "Ocorreu um erro ao fazer o cadastro. Tente novamente.",
	FlowReset:  "Ocorreu um erro ao enviar o e-mail de recuperação. Tente novamente.",
}

// Message returns the user-facing text for code on flow, falling back to
// the flow's generic message for unmapped codes.
func Message(flow Flow, code Code) string {
	if msg, ok := messages[flow][code]; ok {
		return msg
	}
	return fallbacks[flow]
}
