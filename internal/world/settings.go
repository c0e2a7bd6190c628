package world

import "github.com/udisondev/roundmods/internal/model"

// DefaultSettings returns the console variables every match starts with.
func DefaultSettings() []*model.Setting {
	return []*model.Setting{
		model.MustSetting("sv_cheats", model.KindBool, 0, "false"),
		model.MustSetting("sv_gravity", model.KindFloat, model.FlagReplicated, "800"),
		model.MustSetting("sv_airaccelerate", model.KindFloat, model.FlagReplicated, "12"),
		model.MustSetting("sv_accelerate", model.KindFloat, model.FlagReplicated, "5.5"),
		model.MustSetting("sv_friction", model.KindFloat, model.FlagReplicated, "5.2"),
		model.MustSetting("sv_maxspeed", model.KindInt, model.FlagReplicated, "320"),
		model.MustSetting("sv_enablebunnyhopping", model.KindBool, model.FlagReplicated, "false"),
		model.MustSetting("sv_autobunnyhopping", model.KindBool, model.FlagReplicated, "false"),
		model.MustSetting("sv_staminajumpcost", model.KindFloat, model.FlagReplicated, "0.08"),
		model.MustSetting("sv_staminalandcost", model.KindFloat, model.FlagReplicated, "0.05"),
		model.MustSetting("sv_falldamage_scale", model.KindFloat, 0, "1"),
		model.MustSetting("mp_friendlyfire", model.KindBool, 0, "false"),
		model.MustSetting("mp_damage_headshot_only", model.KindBool, 0, "false"),
		model.MustSetting("mp_buytime", model.KindInt, 0, "20"),
		model.MustSetting("weapon_accuracy_nospread", model.KindBool, model.FlagReplicated, "false"),
		model.MustSetting("weapon_recoil_scale", model.KindFloat, model.FlagReplicated, "2"),
		model.MustSetting("sv_infinite_ammo", model.KindInt, 0, "0"),
		model.MustSetting("sv_skyname", model.KindString, 0, "sky_day02_05"),
		model.MustSetting("sv_gravity_direction", model.KindVector3, 0, "0 0 -1"),
		model.MustSetting("cl_showfps", model.KindInt, model.FlagClientCanExecute, "0"),
		model.MustSetting("cl_crosshaircolor", model.KindInt, model.FlagClientCanExecute, "1"),
		model.MustSetting("cl_drawhud", model.KindBool, model.FlagCheat, "true"),
		model.MustSetting("r_drawothermodels", model.KindInt, model.FlagCheat, "1"),
	}
}
