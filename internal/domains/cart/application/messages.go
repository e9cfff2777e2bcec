package application

// User-facing notification messages.
const (
	MsgAddFailed     = "Erro na adição do produto"
	MsgStockExceeded = "Quantidade solicitada fora de estoque"
	MsgRemoveFailed  = "Erro na remoção do produto"
	MsgUpdateFailed  = "Erro na alteração de quantidade do produto"
)
