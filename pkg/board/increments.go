package board

// Mailbox increments per step, ported from original_source/utilities.py's
// WHITE_INCREMENTS/BLACK_INCREMENTS/WHITE_ATK_INCREMENTS tables: the pack's
// reference mailbox uses the same A1=91,A8=21 layout this board does, so the
// numeric deltas carry over unchanged. Each table lists one ray per kind;
// knight and king rays are single-step (the generator stops after one hop),
// slider rays (bishop/rook/queen) walk until blocked.
var (
	knightIncrements = [8]int{-21, -19, -8, 12, 21, 19, 8, -12}
	bishopIncrements = [4]int{-11, 11, 9, -9}
	rookIncrements   = [4]int{-10, 1, 10, -1}
	queenIncrements  = [8]int{-11, 11, 9, -9, -10, 1, 10, -1}
	kingIncrements   = [8]int{-11, -10, -9, 1, 11, 10, 9, -1}
)

// pawnPushIncrement and pawnCaptureIncrements are signed by color (a double
// push is two single push increments): White advances toward rank 8 (index decreasing by 10 per
// rank in this layout), Black toward rank 1.
func pawnPushIncrement(c Color) int {
	if c == White {
		return -10
	}
	return 10
}

func pawnCaptureIncrements(c Color) [2]int {
	if c == White {
		return [2]int{-11, -9}
	}
	return [2]int{11, 9}
}

func pawnHomeRank(c Color) int {
	if c == White {
		return 1
	}
	return 6
}

func pawnPromotionRank(c Color) int {
	if c == White {
		return 7
	}
	return 0
}
