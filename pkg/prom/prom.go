package prom

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	xhttp "github.com/kbenedict/customer-orders/pkg/http"
	"github.com/kbenedict/customer-orders/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

const (
	SystemHTTP          = "http"
	SystemNotifications = "notification"
)

const (
	MetricRequestsTotal          = "requests_total"
	MetricRequestDurationSeconds = "request_duration_seconds"
	MetricSMSSentTotal           = "sms_sent_total"
)

var createMetricLock = &sync.Mutex{}
var namespace = "none"

var MetricSystemEnabled = false

var MetricCollectionCounterVec = make(map[string]*prometheus.CounterVec)
var MetricCollectionHistogramVec = make(map[string]*prometheus.HistogramVec)

var defaultLabels prometheus.Labels

func Create(host string, env string, nameSpace string) error {
	defaultLabels = make(prometheus.Labels)
	defaultLabels["env"] = env
	defaultLabels["instance"] = host
	namespace = nameSpace
	MetricSystemEnabled = true

	var err error
	hasError := func(e error) {
		if err == nil && e != nil {
			err = e
		}
	}

	hasError(CreateMetric("counterVec", SystemHTTP, MetricRequestsTotal, "method", "path", "status"))
	hasError(CreateMetric("histogramVec", SystemHTTP, MetricRequestDurationSeconds, "method", "path"))
	hasError(CreateMetric("counterVec", SystemNotifications, MetricSMSSentTotal, "outcome"))

	return err
}

func ListenAndServer(port string, url string) {
	hh := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	s := xhttp.CreateServer()
	s.GET(url, hh)
	logger.Info("[metrics-server] listening...", "url", url)
	if err := s.ListenAndServe(port); err != nil {
		logger.Panic("[metrics-server] http listen error", "error", err)
	}
}

// HTTPMetricsMiddleware records a counter and latency histogram per request.
// Registered through Engine.Use, it observes the final response status.
func HTTPMetricsMiddleware(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()
		next(ctx)

		method := string(ctx.Method())
		path := string(ctx.Path())
		status := strconv.Itoa(ctx.Response.StatusCode())

		IncCounterVec(SystemHTTP, MetricRequestsTotal, method, path, status)
		AddHistogramVec(SystemHTTP, MetricRequestDurationSeconds, time.Since(start).Seconds(), method, path)
	}
}

func createCounterVec(subsystem, name string, labels []string) error {
	createMetricLock.Lock()
	defer createMetricLock.Unlock()
	MetricCollectionCounterVec[subsystem+name] = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        name,
		Help:        "",
		ConstLabels: defaultLabels,
	}, labels)
	return prometheus.Register(MetricCollectionCounterVec[subsystem+name])
}

func createHistogramVec(subsystem, name string, labels []string) error {
	createMetricLock.Lock()
	defer createMetricLock.Unlock()
	MetricCollectionHistogramVec[subsystem+name] = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   namespace,
		Subsystem:   subsystem,
		Name:        name,
		Help:        "",
		ConstLabels: defaultLabels,
		Buckets:     prometheus.DefBuckets,
	}, labels)
	return prometheus.Register(MetricCollectionHistogramVec[subsystem+name])
}

func CreateMetric(metricType, metricSubsystem, metricName string, labelsValues ...string) error {
	switch metricType {
	case "counterVec":
		return createCounterVec(metricSubsystem, metricName, labelsValues)
	case "histogramVec":
		return createHistogramVec(metricSubsystem, metricName, labelsValues)
	}
	return fmt.Errorf("metric type %s is not defined", metricType)
}

func AddCounterVec(subsystem, name string, num float64, labelValues ...string) {
	if !MetricSystemEnabled {
		return
	}
	if v, ok := MetricCollectionCounterVec[subsystem+name]; ok {
		v.WithLabelValues(labelValues...).Add(num)
		return
	}
	logger.Warn("[metrics-server] counter vec not found", "subsystem", subsystem, "name", name)
}

func IncCounterVec(subsystem, name string, labelValues ...string) {
	AddCounterVec(subsystem, name, 1, labelValues...)
}

func AddHistogramVec(subsystem, name string, number float64, labelValues ...string) {
	if !MetricSystemEnabled {
		return
	}
	if v, ok := MetricCollectionHistogramVec[subsystem+name]; ok {
		v.WithLabelValues(labelValues...).Observe(number)
		return
	}
	logger.Warn("[metrics-server] histogram vec not found", "subsystem", subsystem, "name", name)
}

func IncSMSSent(outcome string) {
	IncCounterVec(SystemNotifications, MetricSMSSentTotal, outcome)
}
