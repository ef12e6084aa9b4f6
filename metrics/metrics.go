// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics provides a Prometheus-backed implementation of the
// operation pipeline's Observer interface
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusObserver counts operation rejections and processing defects by
// reason. It implements operation.Observer
type PrometheusObserver struct {
	invalid *prometheus.CounterVec
	failure *prometheus.CounterVec
}

// NewPrometheusObserver builds the observer and registers its collectors
// with the provided registerer. A nil registerer leaves registration to the
// caller
func NewPrometheusObserver(
	reg prometheus.Registerer,
) (*PrometheusObserver, error) {
	o := &PrometheusObserver{
		invalid: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meridian_operation_invalid_total",
				Help: "Total number of operations rejected during validation",
			},
			[]string{"reason"},
		),
		failure: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "meridian_operation_failure_total",
				Help: "Total number of operation processing defects",
			},
			[]string{"reason"},
		),
	}
	if reg != nil {
		if err := reg.Register(o.invalid); err != nil {
			return nil, err
		}
		if err := reg.Register(o.failure); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *PrometheusObserver) OperationInvalid(reason string) {
	o.invalid.WithLabelValues(reason).Inc()
}

func (o *PrometheusObserver) OperationFailure(reason string) {
	o.failure.WithLabelValues(reason).Inc()
}
