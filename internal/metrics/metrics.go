// Package metrics реализует сбор Prometheus-метрик сервиса проката.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder — интерфейс записи метрик, используемый сервисным слоем.
type Recorder interface {
	RecordRegistration()
	RecordLogin(success bool)
	RecordRentalAdmitted()
	RecordRentalRejected(reason string)
	RecordRentalFinished()
}

// Collector собирает метрики и регистрирует их в переданном реестре.
type Collector struct {
	registrations   prometheus.Counter
	loginSuccess    prometheus.Counter
	loginFail       prometheus.Counter
	rentalsAdmitted prometheus.Counter
	rentalsRejected *prometheus.CounterVec
	rentalsFinished prometheus.Counter
}

// NewCollector создает Collector и регистрирует метрики в реестре.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "carrental_user_registrations_total",
			Help: "Количество зарегистрированных пользователей",
		}),
		loginSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "carrental_login_success_total",
			Help: "Количество успешных входов",
		}),
		loginFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "carrental_login_fail_total",
			Help: "Количество неудачных входов",
		}),
		rentalsAdmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "carrental_rentals_admitted_total",
			Help: "Количество одобренных заявок на аренду",
		}),
		rentalsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "carrental_rentals_rejected_total",
			Help: "Количество отклонённых заявок на аренду по причинам",
		}, []string{"reason"}),
		rentalsFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "carrental_rentals_finished_total",
			Help: "Количество закрытых договоров аренды",
		}),
	}

	reg.MustRegister(
		c.registrations,
		c.loginSuccess,
		c.loginFail,
		c.rentalsAdmitted,
		c.rentalsRejected,
		c.rentalsFinished,
	)

	return c
}

// RecordRegistration фиксирует регистрацию пользователя.
func (c *Collector) RecordRegistration() {
	c.registrations.Inc()
}

// RecordLogin фиксирует попытку входа.
func (c *Collector) RecordLogin(success bool) {
	if success {
		c.loginSuccess.Inc()
	} else {
		c.loginFail.Inc()
	}
}

// RecordRentalAdmitted фиксирует одобренную заявку на аренду.
func (c *Collector) RecordRentalAdmitted() {
	c.rentalsAdmitted.Inc()
}

// RecordRentalRejected фиксирует отклонённую заявку с причиной отказа.
func (c *Collector) RecordRentalRejected(reason string) {
	c.rentalsRejected.WithLabelValues(reason).Inc()
}

// RecordRentalFinished фиксирует закрытие договора аренды.
func (c *Collector) RecordRentalFinished() {
	c.rentalsFinished.Inc()
}

// Noop — заглушка Recorder для тестов и сборок без метрик.
type Noop struct{}

// RecordRegistration ничего не делает.
func (Noop) RecordRegistration() {}

// RecordLogin ничего не делает.
func (Noop) RecordLogin(bool) {}

// RecordRentalAdmitted ничего не делает.
func (Noop) RecordRentalAdmitted() {}

// RecordRentalRejected ничего не делает.
func (Noop) RecordRentalRejected(string) {}

// RecordRentalFinished ничего не делает.
func (Noop) RecordRentalFinished() {}
