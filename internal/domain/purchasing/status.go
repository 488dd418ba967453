// Package purchasing define la máquina de estados de una orden de compra.
// Las transiciones válidas viven en una sola tabla en lugar de repetirse en
// cada caso de uso.
package purchasing

// Estados de una orden de compra.
const (
	StatusDraft     = "draft"
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusOrdered   = "ordered"
	StatusReceived  = "received"
	StatusCancelled = "cancelled"
)

// transitions: estado origen -> estados destino permitidos.
// received es terminal; cancelled solo es alcanzable antes de ordenar.
var transitions = map[string][]string{
	StatusDraft:    {StatusPending, StatusCancelled},
	StatusPending:  {StatusApproved, StatusCancelled},
	StatusApproved: {StatusOrdered, StatusCancelled},
	StatusOrdered:  {StatusOrdered, StatusReceived},
}

// ValidStatus indica si s es un estado conocido.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPending, StatusApproved, StatusOrdered, StatusReceived, StatusCancelled:
		return true
	}
	return false
}

// CanTransition indica si la transición from -> to está permitida.
func CanTransition(from, to string) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// CanReceive indica si la orden admite recepción de mercancía en su estado actual.
// Recibir desde approved implica el paso implícito approved -> ordered.
func CanReceive(status string) bool {
	return status == StatusApproved || status == StatusOrdered
}

// CanCancel indica si la orden puede cancelarse en su estado actual.
func CanCancel(status string) bool {
	return CanTransition(status, StatusCancelled)
}
