package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcbuilder/internal/configurator"
	"pcbuilder/internal/domain"
)

type rig struct {
	cpu, board, board2, ram, gpu, ssd, psu, tower *domain.Product
}

func seedRig(t *testing.T, e *testEnv) rig {
	t.Helper()
	return rig{
		cpu:    e.add(t, "Ryzen 5 7600", domain.CategoryProcessors, "229", 5, withSocket("AM5"), withPower(65)),
		board:  e.add(t, "B650M", domain.CategoryMotherboards, "150", 5, withSocket("AM5"), withMemory(domain.MemoryDDR5), withForm(domain.FormFactorMicroATX)),
		board2: e.add(t, "Z790", domain.CategoryMotherboards, "250", 5, withSocket("LGA1700"), withMemory(domain.MemoryDDR5), withForm(domain.FormFactorATX)),
		ram:    e.add(t, "32GB DDR5", domain.CategoryMemory, "110", 5, withMemory(domain.MemoryDDR5)),
		gpu:    e.add(t, "RTX 4070", domain.CategoryGraphicsCards, "599", 5, withPower(220)),
		ssd:    e.add(t, "1TB NVMe", domain.CategoryStorage, "70", 5),
		psu:    e.add(t, "400W", domain.CategoryPowerSupplies, "45", 5, withPower(400)),
		tower:  e.add(t, "Mid Tower", domain.CategoryCases, "80", 5, withForm(domain.FormFactorATX)),
	}
}

func TestConfigurator_ResolveBuild(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	r := seedRig(t, e)

	b, err := e.builder.ResolveBuild(ctx, Selection{domain.SlotCPU: r.cpu.ID, domain.SlotGPU: 0})
	require.NoError(t, err)
	assert.Len(t, b, 1)

	_, err = e.builder.ResolveBuild(ctx, Selection{"monitor": r.cpu.ID})
	assert.ErrorIs(t, err, domain.ErrUnknownSlot)

	_, err = e.builder.ResolveBuild(ctx, Selection{domain.SlotMotherboard: r.cpu.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = e.builder.ResolveBuild(ctx, Selection{domain.SlotCPU: 404})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestConfigurator_CandidatesFollowSocket(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	r := seedRig(t, e)

	set, err := e.builder.Candidates(ctx, Selection{domain.SlotCPU: r.cpu.ID}, domain.SlotMotherboard, configurator.Filters{})
	require.NoError(t, err)
	assert.False(t, set.WasFallback)
	require.Len(t, set.Items, 1)
	assert.Equal(t, r.board.ID, set.Items[0].ID)

	// сокета нет в каталоге: возвращается вся категория
	lga := e.add(t, "Core i5", domain.CategoryProcessors, "200", 5, withSocket("LGA1851"))
	set, err = e.builder.Candidates(ctx, Selection{domain.SlotCPU: lga.ID}, domain.SlotMotherboard, configurator.Filters{})
	require.NoError(t, err)
	assert.True(t, set.WasFallback)
	assert.Len(t, set.Items, 2)

	_, err = e.builder.Candidates(ctx, Selection{}, domain.SlotRAM, configurator.Filters{MemoryType: "DDR9"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.builder.Candidates(ctx, Selection{}, "monitor", configurator.Filters{})
	assert.ErrorIs(t, err, domain.ErrUnknownSlot)
}

func TestConfigurator_PowerAndCheck(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	r := seedRig(t, e)
	sel := Selection{
		domain.SlotCPU:     r.cpu.ID,
		domain.SlotGPU:     r.gpu.ID,
		domain.SlotRAM:     r.ram.ID,
		domain.SlotStorage: r.ssd.ID,
	}

	w, err := e.builder.EstimatePower(ctx, sel)
	require.NoError(t, err)
	assert.Equal(t, 438, w)

	sel[domain.SlotPSU] = r.psu.ID
	issues, err := e.builder.CheckBuild(ctx, sel)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, domain.IssueWarning, issues[0].Level)

	again, err := e.builder.CheckBuild(ctx, sel)
	require.NoError(t, err)
	assert.Equal(t, issues, again)
}

func TestConfigurator_AddBuildToCart(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	r := seedRig(t, e)
	sel := Selection{
		domain.SlotCPU:         r.cpu.ID,
		domain.SlotMotherboard: r.board.ID,
		domain.SlotRAM:         r.ram.ID,
		domain.SlotPSU:         r.psu.ID,
	}

	n, err := e.builder.AddBuildToCart(ctx, shopper, sel)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, map[int64]int{r.cpu.ID: 1, r.board.ID: 1, r.ram.ID: 1, r.psu.ID: 1}, e.cartLines(t, shopper))
}

func TestConfigurator_AddBuildToCartRefusals(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	r := seedRig(t, e)

	_, err := e.builder.AddBuildToCart(ctx, shopper, Selection{domain.SlotCPU: r.cpu.ID, domain.SlotMotherboard: r.board2.ID})
	assert.ErrorIs(t, err, domain.ErrIncompatibleBuild)

	e.setStock(t, r.ram.ID, 0)
	_, err = e.builder.AddBuildToCart(ctx, shopper, Selection{domain.SlotCPU: r.cpu.ID, domain.SlotRAM: r.ram.ID})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = e.builder.AddBuildToCart(ctx, shopper, Selection{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, e.cartLines(t, shopper))
}

func TestConfigurator_AddBuildToCartIsAtomic(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	r := seedRig(t, e)
	// корзина уже содержит весь остаток видеокарты
	_, err := e.carts.Add(ctx, shopper, r.gpu.ID, 5)
	require.NoError(t, err)

	_, err = e.builder.AddBuildToCart(ctx, shopper, Selection{domain.SlotCPU: r.cpu.ID, domain.SlotGPU: r.gpu.ID})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, map[int64]int{r.gpu.ID: 5}, e.cartLines(t, shopper))
}

func TestConfigurator_SaveAndListBuilds(t *testing.T) {
	ctx := context.Background()
	e := setup(t)
	r := seedRig(t, e)
	sel := Selection{domain.SlotCPU: r.cpu.ID, domain.SlotGPU: r.gpu.ID}

	saved, err := e.builder.SaveBuild(ctx, shopper, "  Gaming  ", sel)
	require.NoError(t, err)
	assert.Equal(t, "Gaming", saved.Name)
	assert.True(t, saved.TotalPrice.Equal(decimal.NewFromInt(828)))
	assert.Equal(t, map[domain.Slot]int64{domain.SlotCPU: r.cpu.ID, domain.SlotGPU: r.gpu.ID}, saved.Components)

	_, err = e.builder.SaveBuild(ctx, shopper, "", sel)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = e.builder.SaveBuild(ctx, shopper, "empty", Selection{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	for i := 0; i < 11; i++ {
		_, err := e.builder.SaveBuild(ctx, shopper, fmt.Sprintf("build %d", i), sel)
		require.NoError(t, err)
	}
	list, err := e.builder.ListSavedBuilds(ctx, shopper)
	require.NoError(t, err)
	require.Len(t, list, SavedBuildsLimit)
	assert.Equal(t, "build 10", list[0].Name)

	other, err := e.builder.ListSavedBuilds(ctx, shopper+1)
	require.NoError(t, err)
	assert.Empty(t, other)
}
