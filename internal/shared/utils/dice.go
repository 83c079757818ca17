package utils

import (
	"math/rand"
	"sync"
	"time"
)

// Dice 是规则层需要的最小随机源，测试里可以换成固定序列。
type Dice interface {
	Intn(n int) int
}

// NewDice 返回带种子的随机源；seed 为 0 时按当前时间取种子。
// 返回的实例加了锁，NPC goroutine 与 actor 可以共用。
func NewDice(seed int64) Dice {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedDice{r: rand.New(rand.NewSource(seed))}
}

type lockedDice struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (d *lockedDice) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.r.Intn(n)
}

// Between 返回 [lo, hi] 闭区间内的随机数。
func Between(d Dice, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + d.Intn(hi-lo+1)
}

// Shuffle 用 Fisher-Yates 打乱切片。
func Shuffle[T any](d Dice, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := d.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// SeqDice 按给定序列依次出数，越界取模；用完后从头循环。
type SeqDice struct {
	mu  sync.Mutex
	seq []int
	pos int
}

func NewSeqDice(seq ...int) *SeqDice {
	return &SeqDice{seq: seq}
}

func (d *SeqDice) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.seq) == 0 {
		return 0
	}
	v := d.seq[d.pos%len(d.seq)]
	d.pos++
	if v < 0 {
		v = -v
	}
	return v % n
}
