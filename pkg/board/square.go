package board

import "fmt"

// Square is an index into the 10x12 padded mailbox board. Real squares occupy
// rows 2..9 and columns 1..8 of the 10-wide, 12-tall grid; the outer two rows
// and the left/right columns are sentinel padding so that a single bounds
// check (board[sq] == Padding) suffices for every ray step. 7 bits.
//
//	  0   1   2   3   4   5   6   7   8   9
//	 10  11  12  13  14  15  16  17  18  19
//	 20  21  22  23  24  25  26  27  28  29   <- rank 8: A8=21 .. H8=28
//	 30  31  32  33  34  35  36  37  38  39   <- rank 7
//	 ...
//	 90  91  92  93  94  95  96  97  98  99   <- rank 1: A1=91 .. H1=98
//	100 101 102 103 104 105 106 107 108 109
//	110 111 112 113 114 115 116 117 118 119
type Square int8

const NumMailboxSquares = 120

// NewSquare returns the mailbox index for the given zero-based file (0=a..7=h)
// and rank (0=rank1..7=rank8).
func NewSquare(file, rank int) Square {
	return Square(21 + file + (7-rank)*10)
}

// File returns the zero-based file (0=a..7=h). Only valid for on-board squares.
func (s Square) File() int {
	return int(s)%10 - 1
}

// Rank returns the zero-based rank (0=rank1..7=rank8). Only valid for on-board squares.
func (s Square) Rank() int {
	return 7 - (int(s)/10 - 2)
}

// IsOnBoard reports whether the square lies within the real 8x8 board (as opposed
// to the mailbox padding). Does not consult the board contents.
func (s Square) IsOnBoard() bool {
	f, r := s.File(), s.Rank()
	return 0 <= f && f < 8 && 0 <= r && r < 8
}

// ToStandard converts a mailbox square to a 0..63 standard index (a1=0, h8=63).
func (s Square) ToStandard() int {
	return s.Rank()*8 + s.File()
}

// FromStandard converts a 0..63 standard index (a1=0, h8=63) to a mailbox square.
func FromStandard(i int) Square {
	return NewSquare(i%8, i/8)
}

func ParseSquare(str string) (Square, error) {
	if len(str) != 2 {
		return 0, fmt.Errorf("invalid square: %q", str)
	}
	f := str[0]
	r := str[1]
	if f < 'a' || f > 'h' || r < '1' || r > '8' {
		return 0, fmt.Errorf("invalid square: %q", str)
	}
	return NewSquare(int(f-'a'), int(r-'1')), nil
}

func (s Square) String() string {
	if !s.IsOnBoard() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+byte(s.File()), '1'+byte(s.Rank()))
}
