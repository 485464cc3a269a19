package configurator

import "pcbuilder/internal/domain"

const (
	// RAMAllowanceWatts фиксированная надбавка за выбранную память
	RAMAllowanceWatts = 50
	// StorageAllowanceWatts фиксированная надбавка за выбранный накопитель
	StorageAllowanceWatts = 30

	// запас 1.2 в виде дроби, чтобы округление вверх было точным
	headroomNum = 12
	headroomDen = 10

	defaultCPUWatts = 65
	defaultGPUWatts = 120
)

// RequiredWatts оценка мощности блока питания для выбранных компонентов.
// Неразмеченные процессор и видеокарта дают 0.
func RequiredWatts(b domain.Build) int {
	return estimate(b, 0, 0)
}

// requiredWattsWithDefaults используется проверкой сборки: для выбранных, но
// неразмеченных процессора и видеокарты подставляются типовые значения.
func requiredWattsWithDefaults(b domain.Build) int {
	return estimate(b, defaultCPUWatts, defaultGPUWatts)
}

func estimate(b domain.Build, cpuDefault, gpuDefault int) int {
	sum := 0
	if cpu, ok := b.Get(domain.SlotCPU); ok {
		sum += cpu.PowerOr(cpuDefault)
	}
	if gpu, ok := b.Get(domain.SlotGPU); ok {
		sum += gpu.PowerOr(gpuDefault)
	}
	if b.Has(domain.SlotRAM) {
		sum += RAMAllowanceWatts
	}
	if b.Has(domain.SlotStorage) {
		sum += StorageAllowanceWatts
	}
	return ceilDiv(sum*headroomNum, headroomDen)
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
