package configurator

import (
	"fmt"
	"slices"

	"pcbuilder/internal/domain"
)

// Коды проблем совместимости
const (
	IssueSocketMismatch     = "socket_mismatch"
	IssueMemoryMismatch     = "memory_type_mismatch"
	IssuePowerInsufficient  = "power_insufficient"
	IssueFormFactorMismatch = "form_factor_mismatch"
)

// caseSizes какие корпуса подходят для платы данного типоразмера
var caseSizes = map[domain.FormFactor][]domain.FormFactor{
	domain.FormFactorATX:      {domain.FormFactorATX, domain.FormFactorEATX, domain.FormFactorMicroATX, domain.FormFactorMiniITX},
	domain.FormFactorMicroATX: {domain.FormFactorATX, domain.FormFactorMicroATX, domain.FormFactorMiniITX},
	domain.FormFactorMiniITX:  {domain.FormFactorATX, domain.FormFactorMicroATX, domain.FormFactorMiniITX},
}

// CaseFits помещается ли плата в корпус. Плата неизвестного типоразмера не подходит никуда.
func CaseFits(board, enclosure domain.FormFactor) bool {
	return slices.Contains(caseSizes[board], enclosure)
}

// extraCaseCandidates корпуса, которые подбираются для плат вне caseSizes.
// Проверка сборки для таких плат по-прежнему предупреждает.
var extraCaseCandidates = map[domain.FormFactor][]domain.FormFactor{
	domain.FormFactorEATX: {domain.FormFactorEATX, domain.FormFactorATX},
}

// CaseCandidate предлагать ли корпус для платы при подборе
func CaseCandidate(board, enclosure domain.FormFactor) bool {
	return CaseFits(board, enclosure) || slices.Contains(extraCaseCandidates[board], enclosure)
}

type rule func(b domain.Build) *domain.Issue

// rules порядок правил определяет порядок проблем в ответе
var rules = []rule{
	checkSocket,
	checkMemory,
	checkPower,
	checkFormFactor,
}

// CheckBuild проверяет сборку и возвращает список проблем.
// Чистая функция от выбранных товаров: одинаковая сборка даёт одинаковый результат.
func CheckBuild(b domain.Build) []domain.Issue {
	issues := make([]domain.Issue, 0)
	for _, r := range rules {
		if issue := r(b); issue != nil {
			issues = append(issues, *issue)
		}
	}
	return issues
}

// HasErrors есть ли среди проблем блокирующие
func HasErrors(issues []domain.Issue) bool {
	for _, is := range issues {
		if is.Level == domain.IssueError {
			return true
		}
	}
	return false
}

func checkSocket(b domain.Build) *domain.Issue {
	cpu, ok1 := b.Get(domain.SlotCPU)
	mb, ok2 := b.Get(domain.SlotMotherboard)
	if !ok1 || !ok2 || cpu.Socket == mb.Socket {
		return nil
	}
	return &domain.Issue{
		Level:   domain.IssueError,
		Code:    IssueSocketMismatch,
		Message: fmt.Sprintf("incompatible sockets: processor %s, motherboard %s", display(cpu.Socket), display(mb.Socket)),
	}
}

func checkMemory(b domain.Build) *domain.Issue {
	mb, ok1 := b.Get(domain.SlotMotherboard)
	ram, ok2 := b.Get(domain.SlotRAM)
	if !ok1 || !ok2 || mb.MemoryType == "" || ram.MemoryType == "" || mb.MemoryType == ram.MemoryType {
		return nil
	}
	return &domain.Issue{
		Level:   domain.IssueError,
		Code:    IssueMemoryMismatch,
		Message: fmt.Sprintf("incompatible memory: motherboard supports %s, selected %s", mb.MemoryType, ram.MemoryType),
	}
}

func checkPower(b domain.Build) *domain.Issue {
	psu, ok := b.Get(domain.SlotPSU)
	if !ok {
		return nil
	}
	required := requiredWattsWithDefaults(b)
	if psu.Power() >= required {
		return nil
	}
	return &domain.Issue{
		Level:   domain.IssueWarning,
		Code:    IssuePowerInsufficient,
		Message: fmt.Sprintf("power supply may be insufficient: required %dW, rated %dW", required, psu.Power()),
	}
}

func checkFormFactor(b domain.Build) *domain.Issue {
	mb, ok1 := b.Get(domain.SlotMotherboard)
	cs, ok2 := b.Get(domain.SlotCase)
	if !ok1 || !ok2 || mb.FormFactor == "" || cs.FormFactor == "" || CaseFits(mb.FormFactor, cs.FormFactor) {
		return nil
	}
	return &domain.Issue{
		Level:   domain.IssueWarning,
		Code:    IssueFormFactorMismatch,
		Message: fmt.Sprintf("%s motherboard may not fit into %s case", mb.FormFactor, cs.FormFactor),
	}
}

func display(socket string) string {
	if socket == "" {
		return "unknown"
	}
	return socket
}
