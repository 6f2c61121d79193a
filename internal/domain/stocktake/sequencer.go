package stocktake

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/jhoicas/apex-sayim/internal/domain"
)

// DocumentPrefix prefijo del número de fiche.
const DocumentPrefix = "SYM"

// IDSource entrega los mayores identificadores ya almacenados (lo implementa el ledger).
type IDSource interface {
	MaxIDs(ctx context.Context) (stockTakeID, lineID int64, err error)
}

// Allocation identificadores asignados a un sayım aceptado.
type Allocation struct {
	StockTakeID    int64
	LineIDs        []int64 // mismo orden que la entrada; los ids > 0 del cliente se conservan
	DocumentNumber string
	IssuedAt       time.Time // instante codificado en DocumentNumber (UTC, ms)
}

// Sequencer asigna ids de sayım, ids de línea y números de documento.
// Todo ocurre bajo un único mutex: dos aceptaciones concurrentes nunca comparten valores.
type Sequencer struct {
	mu         sync.Mutex
	source     IDSource
	reconciled bool
	nextST     int64
	nextLine   int64
	lastIssued time.Time
}

// NewSequencer crea un secuenciador. Con source nil empieza en 1 sin reconciliar.
func NewSequencer(source IDSource) *Sequencer {
	return &Sequencer{source: source, nextST: 1, nextLine: 1}
}

// Allocate asigna en una sola sección crítica el id del sayım, los ids de línea que falten
// (lineIDs <= 0) y el número de documento. Los ids > 0 aportados por el cliente adelantan el contador.
func (s *Sequencer) Allocate(ctx context.Context, lineIDs []int64, now time.Time) (Allocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reconcileLocked(ctx); err != nil {
		return Allocation{}, err
	}

	for _, id := range lineIDs {
		s.observeLineLocked(id)
	}

	a := Allocation{
		StockTakeID: s.nextST,
		LineIDs:     make([]int64, len(lineIDs)),
	}
	s.nextST++
	for i, id := range lineIDs {
		if id > 0 {
			a.LineIDs[i] = id
			continue
		}
		a.LineIDs[i] = s.nextLine
		s.nextLine++
	}
	a.IssuedAt = s.issueLocked(now)
	a.DocumentNumber = FormatDocumentNumber(a.IssuedAt)
	return a, nil
}

// NextStockTakeID reserva un id de sayım.
func (s *Sequencer) NextStockTakeID(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reconcileLocked(ctx); err != nil {
		return 0, err
	}
	id := s.nextST
	s.nextST++
	return id, nil
}

// NextLineID reserva un id de línea.
func (s *Sequencer) NextLineID(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.reconcileLocked(ctx); err != nil {
		return 0, err
	}
	id := s.nextLine
	s.nextLine++
	return id, nil
}

// DocumentNumber emite un número de documento único para este proceso.
func (s *Sequencer) DocumentNumber(now time.Time) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return FormatDocumentNumber(s.issueLocked(now))
}

// Reconcile fuerza la lectura de los máximos almacenados. Los contadores nunca retroceden.
func (s *Sequencer) Reconcile(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reconciled = false
	return s.reconcileLocked(ctx)
}

func (s *Sequencer) reconcileLocked(ctx context.Context) error {
	if s.reconciled || s.source == nil {
		return nil
	}
	maxST, maxLine, err := s.source.MaxIDs(ctx)
	if err != nil {
		return fmt.Errorf("%w: reconciliar identificadores: %v", domain.ErrStorage, err)
	}
	if maxST < math.MaxInt64 && maxST+1 > s.nextST {
		s.nextST = maxST + 1
	}
	s.observeLineLocked(maxLine)
	s.reconciled = true
	return nil
}

// observeLineLocked adelanta el contador de líneas más allá de un id ya usado.
// Solo avanza: ids <= 0 o MaxInt64 (id+1 desbordaría) no lo tocan.
func (s *Sequencer) observeLineLocked(id int64) {
	if id > 0 && id < math.MaxInt64 && id >= s.nextLine {
		s.nextLine = id + 1
	}
}

// issueLocked devuelve el instante a codificar; si cae en el mismo milisegundo que el anterior, +1 ms.
func (s *Sequencer) issueLocked(now time.Time) time.Time {
	t := now.UTC().Truncate(time.Millisecond)
	if !t.After(s.lastIssued) {
		t = s.lastIssued.Add(time.Millisecond)
	}
	s.lastIssued = t
	return t
}

// FormatDocumentNumber "SYM" + yyyyMMddHHmmssfff en UTC.
func FormatDocumentNumber(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%s%s%03d", DocumentPrefix, t.Format("20060102150405"), t.Nanosecond()/int(time.Millisecond))
}
