package pricing

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-SeatBooking/internal/domain"
)

// Update результат одного пересчёта в pipeline
type Update struct {
	Token  uint64
	Inputs QuoteInput
	Result *QuoteResult
	Err    error
}

// Pipeline пересчитывает котировку только при изменении входов, влияющих на цену.
// Изменения, пришедшие чаще wait, схлопываются в один пересчёт.
// Каждый пересчёт несёт монотонный токен; результат отбрасывается,
// если за время расчёта был выдан более новый токен.
//
// Pipeline предназначен для долгоживущих интерактивных клиентов (форма бронирования,
// которая держит состояние между правками). HTTP-сервер его не использует:
// каждый запрос /quote уже является одним пересчётом через Calculator.
type Pipeline struct {
	quoter   Quoter
	wait     time.Duration
	onUpdate func(Update)
	now      func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	inputs QuoteInput
	token  uint64
	timer  *time.Timer
	last   *Update
	closed bool
}

// NewPipeline создает pipeline с начальными входными данными.
// onUpdate вызывается вне блокировки и может вызывать Set-методы.
func NewPipeline(quoter Quoter, initial QuoteInput, wait time.Duration, onUpdate func(Update)) *Pipeline {
	if wait <= 0 {
		wait = domain.DefaultRecomputeWait
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pipeline{
		quoter:   quoter,
		wait:     wait,
		onUpdate: onUpdate,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
		inputs:   initial,
	}
}

// SetWindow меняет временное окно и планирует пересчёт
func (p *Pipeline) SetWindow(w domain.TimeWindow) error {
	return p.change(func(in *QuoteInput) { in.Window = w })
}

// SetParty меняет состав группы и планирует пересчёт
func (p *Pipeline) SetParty(party domain.Party) error {
	return p.change(func(in *QuoteInput) { in.Party = party })
}

// SetEntitlement заменяет выбранный entitlement целиком; nil снимает выбор
func (p *Pipeline) SetEntitlement(e domain.Entitlement) error {
	return p.change(func(in *QuoteInput) { in.Entitlement = e })
}

// SetPaymentMethod меняет способ оплаты и планирует пересчёт
func (p *Pipeline) SetPaymentMethod(m domain.PaymentMethod) error {
	return p.change(func(in *QuoteInput) { in.PaymentMethod = m })
}

// Inputs возвращает текущие входные данные
func (p *Pipeline) Inputs() QuoteInput {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.inputs
}

// Latest возвращает последний принятый (не устаревший) результат
func (p *Pipeline) Latest() (Update, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last == nil {
		return Update{}, false
	}
	return *p.last, true
}

// Close останавливает таймер, отменяет расчёт в полёте и ждёт его завершения
func (p *Pipeline) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	if p.timer != nil && p.timer.Stop() {
		p.wg.Done()
	}
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()
}

func (p *Pipeline) change(apply func(in *QuoteInput)) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPipelineClosed
	}

	apply(&p.inputs)
	p.token++

	if p.timer != nil && p.timer.Stop() {
		p.wg.Done()
	}

	token := p.token
	p.wg.Add(1)
	p.timer = time.AfterFunc(p.wait, func() {
		defer p.wg.Done()
		p.run(token)
	})
	return nil
}

func (p *Pipeline) run(token uint64) {
	p.mu.Lock()
	if p.closed || token != p.token {
		p.mu.Unlock()
		return
	}
	inputs := p.inputs
	p.mu.Unlock()

	inputs.Now = p.now()
	result, err := p.quoter.Quote(p.ctx, inputs)

	p.mu.Lock()
	if p.closed || token != p.token {
		// пришли новые входные данные, результат устарел
		p.mu.Unlock()
		return
	}
	if err == nil && result.Cleared {
		p.inputs.Entitlement = nil
	}
	update := Update{Token: token, Inputs: inputs, Result: result, Err: err}
	p.last = &update
	p.mu.Unlock()

	if p.onUpdate != nil {
		p.onUpdate(update)
	}
}
