// Package fuzztests houses Go fuzz harnesses for the coverage decoder and the
// annotation pipeline. They guard against panics on arbitrary reports and
// check the ordering guarantees of the output.
//
// Назначение: прогонять произвольные байты через coverage.DecodeBytes и
// annotate.Create.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/coverage, internal/annotate, internal/testkit.
package fuzztests
