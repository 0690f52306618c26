package board

// Named mailbox squares for the home squares involved in castling legality
// and move generation. Computed once from NewSquare rather than hand-derived,
// so they stay correct if the mailbox layout ever changes.
var (
	A1 = NewSquare(0, 0)
	C1 = NewSquare(2, 0)
	D1 = NewSquare(3, 0)
	E1 = NewSquare(4, 0)
	F1 = NewSquare(5, 0)
	G1 = NewSquare(6, 0)
	H1 = NewSquare(7, 0)

	A8 = NewSquare(0, 7)
	C8 = NewSquare(2, 7)
	D8 = NewSquare(3, 7)
	E8 = NewSquare(4, 7)
	F8 = NewSquare(5, 7)
	G8 = NewSquare(6, 7)
	H8 = NewSquare(7, 7)
)
