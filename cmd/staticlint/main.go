// Command staticlint - multichecker, которым проверяется hawkmon.
//
// Набор подобран под то, что в этом репозитории ломается чаще всего:
// тела HTTP-ответов клиента, контексты запросов, мьютексы приёмника и
// агента, разбор ошибок через errors.As, теги json у сущностей Hawkular.
//
// Запуск:
//
//	go install github.com/chestorix/hawkmon/cmd/staticlint
//	staticlint ./...
//
// Состав:
//   - проходы golang.org/x/tools, сгруппированные ниже по назначению;
//   - все проверки SA из staticcheck и по одной из QF, S, ST;
//   - simpleerrcheck: ошибка вызова не должна теряться в голом выражении
//     (fmt и запись в bytes.Buffer, strings.Builder, hash.Hash не проверяются);
//   - noosexit: main.main не вызывает os.Exit, бинарники завершаются через
//     run() error и logrus.Fatal.
package main

import (
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/atomic"
	"golang.org/x/tools/go/analysis/passes/bools"
	"golang.org/x/tools/go/analysis/passes/buildtag"
	"golang.org/x/tools/go/analysis/passes/composite"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/loopclosure"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilfunc"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shift"
	"golang.org/x/tools/go/analysis/passes/sortslice"
	"golang.org/x/tools/go/analysis/passes/stdmethods"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/tests"
	"golang.org/x/tools/go/analysis/passes/unmarshal"
	"golang.org/x/tools/go/analysis/passes/unreachable"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"honnef.co/go/tools/quickfix"
	"honnef.co/go/tools/simple"
	"honnef.co/go/tools/staticcheck"
	"honnef.co/go/tools/stylecheck"

	"github.com/chestorix/hawkmon/cmd/staticlint/errcheck"
	"github.com/chestorix/hawkmon/cmd/staticlint/noosexit"
)

// HTTP-клиент и сервер: закрытие тел ответов, отмена контекстов.
var httpAnalyzers = []*analysis.Analyzer{
	httpresponse.Analyzer,
	lostcancel.Analyzer,
}

// Мьютекс приёмника, пул воркеров агента, замыкания в циклах.
var concurrencyAnalyzers = []*analysis.Analyzer{
	atomic.Analyzer,
	copylock.Analyzer,
	loopclosure.Analyzer,
}

// Типизированные ошибки клиента и приёмника, форматирование логов.
var errorAnalyzers = []*analysis.Analyzer{
	errorsas.Analyzer,
	printf.Analyzer,
	unusedresult.Analyzer,
}

// Сущности Hawkular и кодек json-iterator.
var wireAnalyzers = []*analysis.Analyzer{
	structtag.Analyzer,
	unmarshal.Analyzer,
	composite.Analyzer,
	sortslice.Analyzer,
}

var generalAnalyzers = []*analysis.Analyzer{
	bools.Analyzer,
	buildtag.Analyzer,
	nilfunc.Analyzer,
	shift.Analyzer,
	stdmethods.Analyzer,
	tests.Analyzer,
	unreachable.Analyzer,
}

// Отдельные проверки staticcheck вне класса SA.
var extraChecks = map[string]bool{
	"QF1001": true, // законы де Моргана
	"S1002":  true, // лишнее сравнение с true
	"ST1000": true, // комментарий пакета
}

func main() {
	multichecker.Main(analyzers()...)
}

// analyzers собирает полный набор проверок репозитория.
func analyzers() []*analysis.Analyzer {
	var list []*analysis.Analyzer
	for _, group := range [][]*analysis.Analyzer{
		httpAnalyzers,
		concurrencyAnalyzers,
		errorAnalyzers,
		wireAnalyzers,
		generalAnalyzers,
	} {
		list = append(list, group...)
	}

	for _, a := range staticcheck.Analyzers {
		if strings.HasPrefix(a.Analyzer.Name, "SA") {
			list = append(list, a.Analyzer)
		}
	}
	for _, a := range quickfix.Analyzers {
		if extraChecks[a.Analyzer.Name] {
			list = append(list, a.Analyzer)
		}
	}
	for _, a := range simple.Analyzers {
		if extraChecks[a.Analyzer.Name] {
			list = append(list, a.Analyzer)
		}
	}
	for _, a := range stylecheck.Analyzers {
		if extraChecks[a.Analyzer.Name] {
			list = append(list, a.Analyzer)
		}
	}

	return append(list, errcheck.Analyzer, noosexit.Analyzer)
}
