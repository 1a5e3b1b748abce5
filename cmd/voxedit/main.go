package main

import (
	"flag"
	"log"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/annel0/voxel-engine/internal/config"
	"github.com/annel0/voxel-engine/internal/geom"
	"github.com/annel0/voxel-engine/internal/logging"
	"github.com/annel0/voxel-engine/internal/metrics"
	"github.com/annel0/voxel-engine/internal/util"
	"github.com/annel0/voxel-engine/internal/vec"
	"github.com/annel0/voxel-engine/internal/voxel"
	"github.com/annel0/voxel-engine/internal/voxel/shape"
)

func main() {
	cfgPath := flag.String("config", "config.yml", "путь к файлу конфигурации")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	if err := logging.InitDefaultLogger("voxedit"); err != nil {
		log.Fatalf("Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	logging.SetConsoleLevel(logging.ParseLevel(cfg.Log.ConsoleLevel))

	logging.Info("Запуск демонстрационной сессии редактирования (seed=%d)", cfg.Session.Seed)

	var em *metrics.EditMetrics
	if cfg.Metrics.Enabled {
		em = metrics.NewEditMetrics("voxel")
		port := cfg.Metrics.GetMetricsPort()
		metrics.ServeEndpoint(port)
		logging.Info("Метрики доступны на :%d/metrics", port)
	}

	run(cfg, em)
}

// run выполняет сценарий: мазки шумовой кистью с симметрией, кубическое
// вычитание, COW-снимок, слияние, поворот, экструзия и выделение.
func run(cfg *config.Config, em *metrics.EditMetrics) {
	ids := voxel.NewIDSource()
	mesh := voxel.NewMesh(ids)
	defer mesh.Release()

	sess := cfg.Session
	brush := shape.NewNoise(sess.Seed, 0.3)
	painter := &voxel.Painter{
		Mode:       voxel.ModeOver,
		Shape:      brush,
		Color:      voxel.Color{180, 120, 60, 255},
		Smoothness: sess.Smoothness,
	}
	if sess.Symmetry {
		painter.Symmetry = voxel.SymmetryX
	}

	// Мазки вдоль шумовой кривой высот
	for i := 0; i < sess.Strokes; i++ {
		x := float64(i) * sess.BrushSize
		h := util.PerlinNoise3D(x/64, 0, 0, sess.Seed) * 32
		center := mgl64.Vec3{x, 0, h}
		half := sess.BrushSize / 2
		box := geom.BoxFromAABB(geom.AABB{
			Min: center.Sub(mgl64.Vec3{half, half, half}),
			Max: center.Add(mgl64.Vec3{half, half, half}),
		})
		observe(em, "apply", func() { mesh.Apply(painter, box) })
	}
	report(em, mesh, "мазки")

	// COW-снимок перед разрушающей операцией
	snapshot := mesh.Copy()
	defer snapshot.Release()

	cut := &voxel.Painter{Mode: voxel.ModeSub, Shape: shape.Cube, Color: voxel.Color{0, 0, 0, 255}}
	cutBox := geom.BoxFromAABB(geom.AABB{Min: mgl64.Vec3{-8, -8, -8}, Max: mgl64.Vec3{24, 8, 24}})
	observe(em, "apply", func() { mesh.Apply(cut, cutBox) })
	report(em, mesh, "вычитание")
	logging.Debug("Снимок не изменился: версия %d, блоков %d", snapshot.VersionID(), snapshot.BlockCount())

	// Возврат вырезанного через слияние со снимком
	observe(em, "merge", func() { mesh.Merge(snapshot, voxel.ModeMax) })
	report(em, mesh, "слияние")

	// Поворот вокруг оси Z
	observe(em, "move", func() { mesh.Move(mgl64.HomogRotate3DZ(math.Pi / 2)) })
	report(em, mesh, "поворот")

	// Экструзия плоской площадки
	clip := geom.AABB{Min: mgl64.Vec3{-16, -16, 0}, Max: mgl64.Vec3{16, 16, 8}}
	plane := geom.Plane{P: mgl64.Vec3{0, 0, 2}, N: mgl64.Vec3{0, 0, 1}}
	observe(em, "extrude", func() { mesh.Extrude(plane, clip) })
	report(em, mesh, "экструзия")

	// Выделение связной прозрачной полости
	selection := voxel.NewMesh(ids)
	defer selection.Release()
	cond := func(v voxel.Color, _ [6]voxel.Color, mask [6]uint8) uint8 {
		if v[3] != 0 {
			return 0
		}
		for _, a := range mask {
			if a != 0 {
				return 255
			}
		}
		return 0
	}
	bb := mesh.BoundingBox(true)
	if !bb.IsNull() {
		seed := vec.FloorVec3(bb.Center())
		observe(em, "select", func() { mesh.Select(seed, cond, selection) })
		logging.Info("Выделение: %d блоков", selection.BlockCount())
	}

	logging.Info("Сессия завершена: версия меша %d (источник %s)",
		mesh.VersionID(), ids.Origin())
}

// observe выполняет операцию и фиксирует метрики, если они включены
func observe(em *metrics.EditMetrics, op string, fn func()) {
	start := time.Now()
	fn()
	if em != nil {
		em.ObserveOp(op, time.Since(start))
	}
}

// report логирует состояние меша после шага сценария
func report(em *metrics.EditMetrics, mesh *voxel.Mesh, step string) {
	if em != nil {
		em.SetBlocks(mesh.BlockCount())
	}
	bb := mesh.BoundingBox(true)
	if bb.IsNull() {
		logging.Info("Шаг %q: меш пуст (версия %d)", step, mesh.VersionID())
		return
	}
	logging.Info("Шаг %q: блоков %d, бокс [%v .. %v], версия %d",
		step, mesh.BlockCount(), bb.Min, bb.Max, mesh.VersionID())
}
