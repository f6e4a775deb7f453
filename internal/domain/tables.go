package domain

// Tables lists the models migrated on SQL storage.
var Tables = []interface{}{
	&SysKV{},
}
